package builder

import (
	"html/template"
	"time"

	"hyperui/internal/catalog"
	"hyperui/internal/config"
	"hyperui/internal/mdx"
	"hyperui/internal/page"
	"hyperui/internal/routes"

	"github.com/rs/zerolog"
)

// BuildOptions controls a site build.
type BuildOptions struct {
	Site config.SiteConfig
	// CleanDestination empties the output directory before writing.
	CleanDestination bool
	// Jobs bounds the number of pages built concurrently. Zero or less
	// means one job per route.
	Jobs     int
	Compiler mdx.Options
	Logger   zerolog.Logger
}

// PageData is the struct passed to templates. Entry parameters that are not
// part of the catalog schema are available via `.Params`.
type PageData struct {
	Content     template.HTML
	Title       string
	SEO         page.SEO
	BaseHref    string
	Site        config.SiteConfig
	Route       routes.Route
	Components  []catalog.RenderableComponent
	Fingerprint string
	Params      map[string]any
}

// ManifestEntry describes one generated page in routes.json.
type ManifestEntry struct {
	Route       string `json:"route"`
	Category    string `json:"category"`
	Slug        string `json:"slug"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// Failure is a route that could not be built.
type Failure struct {
	Route routes.Route
	Err   error
}

// Report summarises a build. Pages and Failures are in route order.
type Report struct {
	Routes   int
	Pages    []ManifestEntry
	Failures []Failure
	Duration time.Duration
}

// Failed reports whether any route failed to build.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

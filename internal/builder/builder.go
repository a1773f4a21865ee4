// Package builder renders every enumerated route into a static HTML page.
package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"hyperui/internal/catalog"
	"hyperui/internal/content"
	herrors "hyperui/internal/errors"
	"hyperui/internal/logfields"
	"hyperui/internal/mdx"
	"hyperui/internal/page"
	"hyperui/internal/routes"
	"hyperui/internal/theme"
	"hyperui/internal/util"

	"golang.org/x/sync/errgroup"
)

// ManifestFile is written to the output root and lists every built page.
const ManifestFile = "routes.json"

// BuildSite assembles and renders every route of the content store, copies
// static assets and writes the route manifest. A route that fails is
// recorded in the report and does not stop the others; the returned error
// is reserved for failures of the build as a whole.
func BuildSite(ctx context.Context, opts BuildOptions) (*Report, error) {
	start := time.Now()
	site := opts.Site
	logger := opts.Logger

	if err := prepareOutput(site.OutputDir, opts.CleanDestination); err != nil {
		return nil, err
	}

	tmpl, err := theme.Load(site.TemplateDir, site.Template)
	if err != nil {
		return nil, err
	}

	compiler := mdx.NewCompiler(catalog.Widgets(), opts.Compiler)
	assembler := page.New(content.NewDir(site.ContentDir), compiler, site, logger)
	rs, err := assembler.ListAllRoutes(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("routes", len(rs)).Str(logfields.KeyPath, site.ContentDir).Msg("enumerated routes")

	results := make([]*ManifestEntry, len(rs))
	failures := make([]error, len(rs))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, route := range rs {
		g.Go(func() error {
			entry, err := buildRoute(gctx, assembler, tmpl, opts, route)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failures[i] = err
				event := logger.Error().Err(err).Str(logfields.KeyRoute, route.String())
				if classified, ok := herrors.AsClassified(err); ok {
					if field, ok := classified.Context().GetString(herrors.ContextField); ok {
						event = event.Str(logfields.KeyField, field)
					}
				}
				event.Msg("route failed")
				return nil
			}
			results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Routes: len(rs)}
	for i, route := range rs {
		if failures[i] != nil {
			report.Failures = append(report.Failures, Failure{Route: route, Err: failures[i]})
			continue
		}
		report.Pages = append(report.Pages, *results[i])
	}

	if err := writeIndex(tmpl, site.OutputDir, opts, report.Pages); err != nil {
		return nil, err
	}
	if err := writeManifest(filepath.Join(site.OutputDir, ManifestFile), report.Pages); err != nil {
		return nil, err
	}
	if site.Template == theme.DefaultName {
		if err := copyStaticAssets(theme.Assets(), site.OutputDir); err != nil {
			return nil, err
		}
	}
	if err := copyStaticDir(site.StaticDir, site.OutputDir); err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	logger.Info().
		Int(logfields.KeyPages, len(report.Pages)).
		Int(logfields.KeyFailed, len(report.Failures)).
		Float64(logfields.KeyDurationMS, float64(report.Duration.Microseconds())/1000).
		Msg("build finished")
	return report, nil
}

func prepareOutput(outputDir string, clean bool) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return herrors.FileSystemError("cannot create output directory", err).File(outputDir).Build()
	}
	if !clean {
		return nil
	}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return herrors.FileSystemError("cannot list output directory", err).File(outputDir).Build()
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
			return herrors.FileSystemError("cannot clean output directory", err).File(outputDir).Build()
		}
	}
	return nil
}

// buildRoute assembles one page and writes it below the output directory.
func buildRoute(ctx context.Context, assembler *page.Assembler, tmpl *template.Template, opts BuildOptions, route routes.Route) (*ManifestEntry, error) {
	p, err := assembler.BuildPage(ctx, route)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := p.RenderBody(&body); err != nil {
		return nil, err
	}

	relPath := filepath.FromSlash(route.Path()) + ".html"
	data := PageData{
		Content:     template.HTML(body.String()),
		Title:       p.Entry.Title,
		SEO:         p.SEO,
		BaseHref:    util.ComputeBaseHref(relPath),
		Site:        opts.Site,
		Route:       route,
		Components:  p.Components,
		Fingerprint: p.Fingerprint,
		Params:      p.Entry.Params,
	}
	if err := renderPage(tmpl, filepath.Join(opts.Site.OutputDir, relPath), data); err != nil {
		return nil, herrors.WrapError(err, herrors.CategoryRender, "cannot write page").
			WithContext(herrors.ContextRoute, route.String()).Build()
	}

	return &ManifestEntry{
		Route:       route.String(),
		Category:    route.Category,
		Slug:        route.Slug,
		Path:        filepath.ToSlash(relPath),
		Fingerprint: p.Fingerprint,
	}, nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<ul class="routes">
{{- range . }}
  <li><a href="{{ .Path }}">{{ .Route }}</a></li>
{{- end }}
</ul>`))

// writeIndex renders the site landing page linking every built page.
func writeIndex(tmpl *template.Template, outputDir string, opts BuildOptions, pages []ManifestEntry) error {
	var body bytes.Buffer
	if err := indexTemplate.Execute(&body, pages); err != nil {
		return herrors.RenderError("cannot render index", err).Build()
	}
	site := opts.Site
	data := PageData{
		Content: template.HTML(body.String()),
		Title:   site.Title,
		SEO: page.SEO{
			Title:       site.Title,
			Description: site.Description,
			Meta:        []page.MetaTag{{Name: "description", Content: site.Description}},
		},
		Site: site,
	}
	if err := renderPage(tmpl, filepath.Join(outputDir, "index.html"), data); err != nil {
		return herrors.RenderError("cannot write index", err).Fatal().Build()
	}
	return nil
}

// renderPage executes the theme's "main" template into outPath.
func renderPage(tmpl *template.Template, outPath string, data PageData) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "main", data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}

func writeManifest(path string, pages []ManifestEntry) error {
	if pages == nil {
		pages = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return herrors.WrapError(err, herrors.CategoryInternal, "cannot encode manifest").Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return herrors.FileSystemError("cannot write manifest", err).File(path).Build()
	}
	return nil
}

// ReadManifest decodes a routes.json written by BuildSite.
func ReadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, herrors.FileSystemError("cannot read manifest", err).File(path).Build()
	}
	var pages []ManifestEntry
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, herrors.ParseError(path, err).Build()
	}
	return pages, nil
}

// copyStaticDir copies the site's static directory when it exists.
func copyStaticDir(staticDir, outputDir string) error {
	if _, err := os.Stat(staticDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return copyStaticAssets(os.DirFS(staticDir), outputDir)
}

// allowedExts are the file extensions considered static assets.
var allowedExts = map[string]bool{
	".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".woff": true, ".woff2": true,
}

// copyStaticAssets copies the asset files of fsys into the output directory.
func copyStaticAssets(fsys fs.FS, outputDir string) error {
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !allowedExts[filepath.Ext(d.Name())] {
			return nil
		}
		return copyFile(fsys, path, filepath.Join(outputDir, filepath.FromSlash(path)))
	})
	if err != nil {
		return herrors.FileSystemError("cannot copy static assets", err).Build()
	}
	return nil
}

func copyFile(fsys fs.FS, path, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	src, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

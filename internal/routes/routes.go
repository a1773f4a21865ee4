// Package routes enumerates the (category, slug) pairs encoded in the
// Content Store's file names.
package routes

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strings"

	"hyperui/internal/logfields"

	"github.com/rs/zerolog"
)

// Separator joins category and slug in a document name.
const Separator = "-"

var (
	categoryPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
)

// Route identifies one content document and one generated page.
type Route struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

func (r Route) String() string {
	return r.Category + "/" + r.Slug
}

// DocumentName is the store file name the route is read from.
func (r Route) DocumentName(ext string) string {
	return r.Category + Separator + r.Slug + ext
}

// Path is the site path of the generated page, without extension.
func (r Route) Path() string {
	return path.Join("components", r.Category, r.Slug)
}

// Valid reports whether r can round-trip through a document name.
func (r Route) Valid() bool {
	return categoryPattern.MatchString(r.Category) && slugPattern.MatchString(r.Slug)
}

// ParseDocumentName maps a store file name to its route. The category ends
// at the first separator, so categories never contain one; slugs may.
func ParseDocumentName(name, ext string) (Route, bool) {
	base, ok := strings.CutSuffix(name, ext)
	if !ok || ext == "" {
		return Route{}, false
	}
	category, slug, ok := strings.Cut(base, Separator)
	if !ok {
		return Route{}, false
	}
	r := Route{Category: category, Slug: slug}
	if !r.Valid() {
		return Route{}, false
	}
	return r, true
}

// Lister is the part of the Content Store the enumerator needs.
type Lister interface {
	Names(ctx context.Context) ([]string, error)
}

// Set is the complete, sorted set of routes for one store snapshot.
// Routes outside the set do not exist; there is no fallback resolution.
type Set struct {
	routes []Route
	index  map[Route]struct{}
}

// NewSet builds a set from routes, dropping duplicates.
func NewSet(rs ...Route) *Set {
	s := &Set{index: make(map[Route]struct{}, len(rs))}
	for _, r := range rs {
		if _, dup := s.index[r]; dup {
			continue
		}
		s.index[r] = struct{}{}
		s.routes = append(s.routes, r)
	}
	sort.Slice(s.routes, func(i, j int) bool {
		if s.routes[i].Category != s.routes[j].Category {
			return s.routes[i].Category < s.routes[j].Category
		}
		return s.routes[i].Slug < s.routes[j].Slug
	})
	return s
}

// Routes returns a copy of the routes in category, slug order.
func (s *Set) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

func (s *Set) Has(r Route) bool {
	_, ok := s.index[r]
	return ok
}

func (s *Set) Len() int {
	return len(s.routes)
}

// Enumerate lists the store and keeps every name that follows the
// {category}-{slug}{ext} convention. Document bodies are never read.
func Enumerate(ctx context.Context, store Lister, ext string, logger zerolog.Logger) (*Set, error) {
	names, err := store.Names(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]Route, 0, len(names))
	for _, name := range names {
		r, ok := ParseDocumentName(name, ext)
		if !ok {
			logger.Debug().Str(logfields.KeyFile, name).Msg("skipping file outside the route naming convention")
			continue
		}
		found = append(found, r)
	}
	set := NewSet(found...)
	logger.Debug().Int("routes", set.Len()).Int("files", len(names)).Msg("enumerated content store")
	return set, nil
}

// Package page assembles category pages: it resolves a route to its
// document, parses and validates the frontmatter, compiles the body and
// binds the flattened components into the render scope.
package page

import (
	"context"
	"sync"
	"time"

	"hyperui/internal/catalog"
	"hyperui/internal/config"
	herrors "hyperui/internal/errors"
	"hyperui/internal/frontmatter"
	"hyperui/internal/logfields"
	"hyperui/internal/mdx"
	"hyperui/internal/routes"

	"github.com/inful/mdfp"
	"github.com/rs/zerolog"
)

// Store is the read side of the Content Store.
type Store interface {
	routes.Lister
	Read(ctx context.Context, name string) ([]byte, error)
}

// Assembler builds CompiledPages. It holds no mutable state besides the
// lazily enumerated route set and is safe for concurrent use.
type Assembler struct {
	store    Store
	compiler *mdx.Compiler
	site     config.SiteConfig
	logger   zerolog.Logger

	mu     sync.Mutex
	routes *routes.Set
}

// New returns an assembler reading from store and compiling bodies with compiler.
func New(store Store, compiler *mdx.Compiler, site config.SiteConfig, logger zerolog.Logger) *Assembler {
	return &Assembler{
		store:    store,
		compiler: compiler,
		site:     site,
		logger:   logger,
	}
}

// Routes returns the enumerated route set, listing the store on first
// successful use. A failed listing is not remembered.
func (a *Assembler) Routes(ctx context.Context) (*routes.Set, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.routes != nil {
		return a.routes, nil
	}
	set, err := routes.Enumerate(ctx, a.store, a.site.Extension, a.logger)
	if err != nil {
		return nil, err
	}
	a.routes = set
	return set, nil
}

// ListAllRoutes returns every route in category, slug order.
func (a *Assembler) ListAllRoutes(ctx context.Context) ([]routes.Route, error) {
	set, err := a.Routes(ctx)
	if err != nil {
		return nil, err
	}
	return set.Routes(), nil
}

// BuildPage assembles the page for route. Routes outside the enumerated set
// are not found; there is no fallback.
func (a *Assembler) BuildPage(ctx context.Context, route routes.Route) (*CompiledPage, error) {
	start := time.Now()
	set, err := a.Routes(ctx)
	if err != nil {
		return nil, err
	}
	if !set.Has(route) {
		return nil, herrors.NotFoundError("route is not part of the enumerated route set").
			WithContext(herrors.ContextRoute, route.String()).Build()
	}

	name := route.DocumentName(a.site.Extension)
	raw, err := a.store.Read(ctx, name)
	if err != nil {
		if classified, ok := herrors.AsClassified(err); ok && classified.Category() == herrors.CategoryNotFound {
			// The enumerator saw this file; the store changed underneath us.
			return nil, classified.
				WithContext(herrors.ContextRoute, route.String()).
				WithContext(herrors.ContextInvariant, true)
		}
		return nil, err
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, herrors.ParseError(name, err).WithContext(herrors.ContextRoute, route.String()).Build()
	}
	if err := doc.Entry.Validate(); err != nil {
		classified, _ := herrors.AsClassified(err)
		return nil, classified.WithContext(herrors.ContextFile, name).WithContext(herrors.ContextRoute, route.String())
	}

	body, err := a.compiler.Compile(ctx, doc.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, herrors.CompileError(name, err).WithContext(herrors.ContextRoute, route.String()).Build()
	}

	components := catalog.Flatten(doc.Entry.Components)
	scope := mdx.Scope{
		catalog.ScopeComponentSlug:      route.Slug,
		catalog.ScopeComponentContainer: doc.Entry.Container,
		catalog.ScopeComponentsArray:    components,
	}

	p := &CompiledPage{
		Route:         route,
		ComponentSlug: route.Slug,
		Entry:         doc.Entry,
		Body:          body,
		Scope:         scope,
		Components:    components,
		Fingerprint:   mdfp.CalculateFingerprintFromParts(string(doc.Frontmatter), string(doc.Body)),
		SEO:           newSEO(a.site.Product, a.site.Brand, a.site.Description, *doc.Entry.SEO),
	}
	a.logger.Debug().
		Str(logfields.KeyRoute, route.String()).
		Str(logfields.KeyCategory, route.Category).
		Str(logfields.KeyFile, name).
		Int("components", len(components)).
		Float64(logfields.KeyDurationMS, float64(time.Since(start).Microseconds())/1000).
		Msg("assembled page")
	return p, nil
}

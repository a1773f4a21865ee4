package page

import (
	"fmt"
	"io"

	"hyperui/internal/catalog"
	herrors "hyperui/internal/errors"
	"hyperui/internal/frontmatter"
	"hyperui/internal/mdx"
	"hyperui/internal/routes"
)

// CompiledPage is everything the page template needs for one route.
type CompiledPage struct {
	Route         routes.Route
	ComponentSlug string
	Entry         frontmatter.CatalogEntry
	Body          *mdx.Body
	Scope         mdx.Scope
	Components    []catalog.RenderableComponent
	Fingerprint   string
	SEO           SEO
}

// SEO is the resolved head metadata of a page.
type SEO struct {
	Title       string
	Description string
	Meta        []MetaTag
}

// MetaTag is one <meta> element. Exactly one of Name and Property is set.
type MetaTag struct {
	Name     string
	Property string
	Content  string
}

// PageTitle renders the "{product} CSS {title} | {brand}" title pattern.
func PageTitle(product, title, brand string) string {
	return fmt.Sprintf("%s CSS %s | %s", product, title, brand)
}

func newSEO(product, brand, siteDescription string, seo frontmatter.SEO) SEO {
	title := PageTitle(product, seo.Title, brand)
	description := seo.Description
	if description == "" {
		description = siteDescription
	}
	return SEO{
		Title:       title,
		Description: description,
		Meta: []MetaTag{
			{Name: "description", Content: description},
			{Property: "og:title", Content: title},
			{Property: "og:description", Content: description},
			{Name: "twitter:title", Content: title},
			{Name: "twitter:description", Content: description},
		},
	}
}

// RenderBody renders the compiled body against the page scope.
func (p *CompiledPage) RenderBody(w io.Writer) error {
	if err := p.Body.Render(w, p.Scope); err != nil {
		return herrors.RenderError("cannot render page body", err).
			WithContext(herrors.ContextRoute, p.Route.String()).Build()
	}
	return nil
}

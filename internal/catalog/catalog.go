// Package catalog turns frontmatter component definitions into the
// render-ready values bound into a page's scope, and provides the widgets
// category pages may invoke.
package catalog

import (
	"hyperui/internal/frontmatter"
)

// Scope names bound for every category page.
const (
	ScopeComponentSlug      = "componentSlug"
	ScopeComponentContainer = "componentContainer"
	ScopeComponentsArray    = "componentsArray"
)

// RenderableComponent is the flattened view of a ComponentDefinition.
type RenderableComponent struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Container string              `json:"container"`
	Creator   string              `json:"creator"`
	Variants  []RenderableVariant `json:"variants"`
}

// RenderableVariant is the flattened view of a VariantDefinition.
type RenderableVariant struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Container string `json:"container"`
}

// Flatten converts components to their renderable form in declaration
// order. Variants is always non-nil.
func Flatten(components frontmatter.Components) []RenderableComponent {
	out := make([]RenderableComponent, 0, len(components))
	for _, c := range components {
		variants := make([]RenderableVariant, 0, len(c.Definition.Variants))
		for _, v := range c.Definition.Variants {
			variants = append(variants, RenderableVariant{
				ID:        v.ID,
				Title:     v.Definition.Title,
				Container: v.Definition.Container,
			})
		}
		out = append(out, RenderableComponent{
			ID:        c.ID,
			Title:     c.Definition.Title,
			Container: c.Definition.Container,
			Creator:   c.Definition.Creator,
			Variants:  variants,
		})
	}
	return out
}

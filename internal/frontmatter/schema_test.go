package frontmatter

import (
	"strings"
	"testing"

	herrors "hyperui/internal/errors"

	"github.com/stretchr/testify/require"
)

const roundedDoc = `---
title: Rounded
emoji: 🔘
container: flex justify-center
seo:
  title: Rounded Buttons
  description: Rounded button examples.
components:
  primary:
    title: Primary
  outline:
    title: Outline
    container: p-4
    creator: jane
    variants:
      small:
        title: Small
      large:
        title: Large
        container: p-8
layout: wide
---
<List />
`

func TestParse_DecodesCatalogEntry(t *testing.T) {
	doc, err := Parse([]byte(roundedDoc))
	require.NoError(t, err)
	require.True(t, doc.HadFrontmatter)
	require.Equal(t, "<List />\n", string(doc.Body))

	e := doc.Entry
	require.Equal(t, "Rounded", e.Title)
	require.Equal(t, "🔘", e.Emoji)
	require.Equal(t, "flex justify-center", e.Container)
	require.NotNil(t, e.SEO)
	require.Equal(t, "Rounded Buttons", e.SEO.Title)
	require.Equal(t, "wide", e.Params["layout"])

	require.Len(t, e.Components, 2)
	require.Equal(t, "primary", e.Components[0].ID)
	require.Empty(t, e.Components[0].Definition.Variants)
	outline := e.Components[1]
	require.Equal(t, "outline", outline.ID)
	require.Equal(t, "jane", outline.Definition.Creator)
	require.Equal(t, []Variant{
		{ID: "small", Definition: VariantDefinition{Title: "Small"}},
		{ID: "large", Definition: VariantDefinition{Title: "Large", Container: "p-8"}},
	}, []Variant(outline.Definition.Variants))
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	ids := []string{"zeta", "alpha", "mid", "beta", "omega", "gamma"}
	var b strings.Builder
	b.WriteString("---\ncomponents:\n")
	for _, id := range ids {
		b.WriteString("  " + id + ":\n    title: " + id + "\n")
	}
	b.WriteString("---\n")

	doc, err := Parse([]byte(b.String()))
	require.NoError(t, err)
	got := make([]string, 0, len(doc.Entry.Components))
	for _, c := range doc.Entry.Components {
		got = append(got, c.ID)
	}
	require.Equal(t, ids, got)
}

func TestParse_ShapeMismatches(t *testing.T) {
	cases := map[string]string{
		"components list":   "---\ncomponents:\n  - primary\n---\n",
		"components scalar": "---\ncomponents: primary\n---\n",
		"component scalar":  "---\ncomponents:\n  primary: Primary\n---\n",
		"variants list":     "---\ncomponents:\n  primary:\n    title: P\n    variants: [a, b]\n---\n",
		"seo scalar":        "---\nseo: Rounded\n---\n",
		"duplicate id":      "---\ncomponents:\n  primary:\n    title: A\n  primary:\n    title: B\n---\n",
		"syntax":            "---\ntitle: [unclosed\n---\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
		})
	}
}

func TestParse_NullVariantsMeansNone(t *testing.T) {
	doc, err := Parse([]byte("---\ncomponents:\n  primary:\n    title: P\n    variants:\n---\n"))
	require.NoError(t, err)
	require.Empty(t, doc.Entry.Components[0].Definition.Variants)
}

func TestValidate_Valid(t *testing.T) {
	doc, err := Parse([]byte(roundedDoc))
	require.NoError(t, err)
	require.NoError(t, doc.Entry.Validate())
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: X\ncomponents:\n  a:\n    container: p-2\n  b:\n    title: B\n    variants:\n      v1:\n        container: x\n---\n"))
	require.NoError(t, err)

	verr := doc.Entry.Validate()
	require.Error(t, verr)
	require.True(t, herrors.HasCategory(verr, herrors.CategoryValidation))

	classified, ok := herrors.AsClassified(verr)
	require.True(t, ok)
	fields, _ := classified.Context().GetString(herrors.ContextField)
	require.Equal(t, "components.a.title,components.b.variants.v1.title,seo", fields)
	require.Contains(t, verr.Error(), "seo is required")
}

func TestValidate_MissingSEOTitleAndComponents(t *testing.T) {
	doc, err := Parse([]byte("---\nseo:\n  description: d\n---\n"))
	require.NoError(t, err)
	classified, ok := herrors.AsClassified(doc.Entry.Validate())
	require.True(t, ok)
	fields, _ := classified.Context().GetString(herrors.ContextField)
	require.Equal(t, "components,seo.title", fields)
}

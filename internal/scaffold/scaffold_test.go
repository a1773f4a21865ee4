package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hyperui/internal/builder"
	"hyperui/internal/config"
	herrors "hyperui/internal/errors"
	"hyperui/internal/frontmatter"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNewSite_BuildsOutOfTheBox(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateNewSite(dir, zerolog.Nop()))

	for _, rel := range []string{
		"site.yaml",
		ArchetypePath,
		"templates/default/layout.html",
		"templates/default/header.html",
		"templates/default/footer.html",
		"static/css/style.css",
		"src/data/components/buttons-rounded.mdx",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}

	t.Chdir(dir)
	site, err := config.LoadSiteConfig("site.yaml")
	require.NoError(t, err)
	report, err := builder.BuildSite(context.Background(), builder.BuildOptions{Site: site, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.False(t, report.Failed())
	require.Len(t, report.Pages, 1)

	html, err := os.ReadFile(filepath.Join("public", "components", "buttons", "rounded.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Rendering 2 components.")
}

func TestCreateNewSite_RefusesExistingSite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateNewSite(dir, zerolog.Nop()))
	err := CreateNewSite(dir, zerolog.Nop())
	assert.True(t, herrors.HasCategory(err, herrors.CategoryValidation))
}

func TestCreateNewComponent(t *testing.T) {
	t.Chdir(t.TempDir())
	site := config.Default()

	path, err := CreateNewComponent(site, "side_menu", "dark-mode", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.DefaultContentDir, "side_menu-dark-mode.mdx"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := frontmatter.Parse(raw)
	require.NoError(t, err)
	require.NoError(t, doc.Entry.Validate())
	assert.Equal(t, "Dark Mode", doc.Entry.Title)
	assert.Equal(t, "Side Menu Dark Mode", doc.Entry.SEO.Title)
	assert.Equal(t, "Tailwind CSS Side Menu Dark Mode components.", doc.Entry.SEO.Description)

	_, err = CreateNewComponent(site, "side_menu", "dark-mode", zerolog.Nop())
	assert.True(t, herrors.HasCategory(err, herrors.CategoryValidation))
}

func TestCreateNewComponent_UsesSiteArchetype(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("archetypes", 0o755))
	require.NoError(t, os.WriteFile(ArchetypePath, []byte("custom {{ .Category }}/{{ .Slug }}\n"), 0o644))

	path, err := CreateNewComponent(config.Default(), "alerts", "toast", zerolog.Nop())
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom alerts/toast\n", string(raw))
}

func TestCreateNewComponent_RejectsNamesOutsideTheRouteConvention(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, tc := range []struct{ category, slug string }{
		{"button-group", "base"},
		{"Buttons", "base"},
		{"buttons", ""},
		{"buttons", "-base"},
		{"buttons", "a/b"},
	} {
		_, err := CreateNewComponent(config.Default(), tc.category, tc.slug, zerolog.Nop())
		assert.True(t, herrors.HasCategory(err, herrors.CategoryValidation), "%s-%s", tc.category, tc.slug)
	}
	_, err := os.Stat(config.DefaultContentDir)
	assert.True(t, os.IsNotExist(err))
}

package theme

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	herrors "hyperui/internal/errors"

	"github.com/stretchr/testify/require"
)

func TestLoad_FallsBackToEmbeddedDefault(t *testing.T) {
	tmpl, err := Load(t.TempDir(), DefaultName)
	require.NoError(t, err)
	for _, name := range []string{"main", "header", "footer"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestLoad_PrefersDirectoryOnDisk(t *testing.T) {
	dir := t.TempDir()
	themeDir := filepath.Join(dir, "plain")
	require.NoError(t, os.MkdirAll(themeDir, 0o755))
	files := map[string]string{
		"layout.html": `{{ define "main" }}<main>{{ template "header" . }}{{ . }}{{ template "footer" . }}</main>{{ end }}`,
		"header.html": `{{ define "header" }}H{{ end }}`,
		"footer.html": `{{ define "footer" }}F{{ end }}`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(themeDir, name), []byte(body), 0o644))
	}

	tmpl, err := Load(dir, "plain")
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&sb, "main", "x"))
	require.Equal(t, "<main>HxF</main>", sb.String())
}

func TestLoad_UnknownThemeIsConfigError(t *testing.T) {
	_, err := Load(t.TempDir(), "missing")
	require.True(t, herrors.HasCategory(err, herrors.CategoryConfig))
}

func TestLoad_IncompleteThemeIsConfigError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken", "layout.html"), []byte(`{{ define "main" }}{{ end }}`), 0o644))

	_, err := Load(dir, "broken")
	require.True(t, herrors.HasCategory(err, herrors.CategoryConfig))
}

func TestAssets_ShipsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(Assets(), "css/style.css")
	require.NoError(t, err)
	require.Contains(t, string(data), "body")
}

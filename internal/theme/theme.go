// Package theme loads page templates: a theme directory on disk when one
// exists, otherwise the embedded default theme.
package theme

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	herrors "hyperui/internal/errors"
)

// DefaultName is the name of the embedded theme.
const DefaultName = "default"

//go:embed all:default
var defaultFS embed.FS

// Files are the template files every theme provides. They define the
// "main", "header" and "footer" templates.
var Files = []string{"layout.html", "header.html", "footer.html"}

// Default returns the embedded default theme rooted at its directory.
func Default() fs.FS {
	sub, err := fs.Sub(defaultFS, DefaultName)
	if err != nil {
		panic(err)
	}
	return sub
}

// Assets returns the static assets shipped with the default theme, laid
// out as they are written to the output directory.
func Assets() fs.FS {
	sub, err := fs.Sub(Default(), "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load parses the theme named name under dir. When the directory does not
// exist and name is the default theme, the embedded copy is used.
func Load(dir, name string) (*template.Template, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return parse(os.DirFS(path), path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, herrors.FileSystemError("cannot open theme", err).File(path).Build()
	}
	if name != DefaultName {
		return nil, herrors.ConfigError("theme does not exist").File(path).Build()
	}
	return parse(Default(), "embedded:"+DefaultName)
}

func parse(fsys fs.FS, source string) (*template.Template, error) {
	tmpl, err := template.New(DefaultName).ParseFS(fsys, Files...)
	if err != nil {
		return nil, herrors.WrapError(err, herrors.CategoryConfig, "cannot parse theme templates").
			Fatal().File(source).Build()
	}
	return tmpl, nil
}

// Package scaffold creates new sites and new component documents.
package scaffold

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"hyperui/internal/config"
	herrors "hyperui/internal/errors"
	"hyperui/internal/logfields"
	"hyperui/internal/routes"
	"hyperui/internal/theme"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ArchetypePath is where a site keeps the template for new components.
const ArchetypePath = "archetypes/component.mdx"

// CreateNewSite scaffolds a site in dir: site.yaml, the default theme, its
// stylesheet, the component archetype and one sample document.
func CreateNewSite(dir string, logger zerolog.Logger) error {
	if _, err := os.Stat(filepath.Join(dir, "site.yaml")); err == nil {
		return herrors.NewError(herrors.CategoryValidation, "a site already exists here").File(dir).Build()
	}

	files := map[string][]byte{
		"site.yaml":   []byte(siteYamlContent),
		ArchetypePath: []byte(archetypeContent),
		filepath.Join(config.DefaultContentDir, "buttons-rounded"+config.DefaultExtension): []byte(sampleComponentContent),
	}
	if err := collect(files, theme.Default(), filepath.Join(config.DefaultTemplates, theme.DefaultName), theme.Files...); err != nil {
		return err
	}
	if err := collect(files, theme.Assets(), config.DefaultStaticDir, "css/style.css"); err != nil {
		return err
	}

	for path, content := range files {
		if err := writeFile(filepath.Join(dir, path), content); err != nil {
			return err
		}
	}
	logger.Info().Str(logfields.KeyPath, dir).Msg("site scaffolded; run `hyperui serve` inside it")
	return nil
}

func collect(dst map[string][]byte, fsys fs.FS, prefix string, names ...string) error {
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return herrors.WrapError(err, herrors.CategoryInternal, "embedded theme is incomplete").File(name).Build()
		}
		dst[filepath.Join(prefix, filepath.FromSlash(name))] = data
	}
	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return herrors.FileSystemError("failed to create directory", err).File(filepath.Dir(path)).Build()
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return herrors.FileSystemError("failed to write file", err).File(path).Build()
	}
	return nil
}

// ComponentData is passed to the archetype template.
type ComponentData struct {
	Category      string
	Slug          string
	CategoryTitle string
	Title         string
	Product       string
}

// CreateNewComponent writes a new document for category and slug below the
// site's content directory and returns its path. Names the route enumerator
// would not pick up are refused, as are existing documents.
func CreateNewComponent(site config.SiteConfig, category, slug string, logger zerolog.Logger) (string, error) {
	route := routes.Route{Category: category, Slug: slug}
	name := route.DocumentName(site.Extension)
	if parsed, ok := routes.ParseDocumentName(name, site.Extension); !ok || parsed != route {
		return "", herrors.ValidationError("route", "category and slug do not form a valid route").
			WithContext(herrors.ContextRoute, route.String()).Build()
	}

	path := filepath.Join(site.ContentDir, name)
	if _, err := os.Stat(path); err == nil {
		return "", herrors.NewError(herrors.CategoryValidation, "document already exists").File(path).Build()
	}

	tmpl, err := loadArchetype(ArchetypePath)
	if err != nil {
		return "", err
	}

	caser := cases.Title(language.English)
	data := ComponentData{
		Category:      category,
		Slug:          slug,
		CategoryTitle: caser.String(humanize(category)),
		Title:         caser.String(humanize(slug)),
		Product:       site.Product,
	}
	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", herrors.WrapError(err, herrors.CategoryRender, "failed to execute archetype").File(ArchetypePath).Build()
	}

	if err := writeFile(path, output.Bytes()); err != nil {
		return "", err
	}
	logger.Info().Str(logfields.KeyFile, path).Str(logfields.KeyRoute, route.String()).Msg("created component")
	return path, nil
}

// loadArchetype parses the site's archetype, or the built-in one when the
// site has none.
func loadArchetype(path string) (*template.Template, error) {
	content := archetypeContent
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, herrors.FileSystemError("could not read archetype", err).File(path).Build()
	}
	tmpl, err := template.New("archetype").Parse(content)
	if err != nil {
		return nil, herrors.WrapError(err, herrors.CategoryParse, "failed to parse archetype").File(path).Build()
	}
	return tmpl, nil
}

func humanize(s string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

const siteYamlContent = `title: HyperUI
product: Tailwind
brand: HyperUI
baseurl: /
description: Free open source Tailwind CSS components.
template: default
content_dir: src/data/components
extension: .mdx
output_dir: public
static_dir: static
`

const archetypeContent = `---
title: {{ .Title }}
seo:
  title: {{ .CategoryTitle }} {{ .Title }}
  description: {{ .Product }} CSS {{ .CategoryTitle }} {{ .Title }} components.
container: ''
components:
  base:
    title: Base
---

<List />
`

const sampleComponentContent = `---
title: Rounded
seo:
  title: Rounded Buttons
  description: Tailwind CSS rounded buttons for your next project.
components:
  primary:
    title: Primary
    variants:
      dark:
        title: Dark
        container: bg-gray-900 p-4
  outline:
    title: Outline
---

Buttons with fully rounded corners. Rendering {componentsArray.length} components.

<List />
`

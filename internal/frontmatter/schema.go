package frontmatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	herrors "hyperui/internal/errors"

	"gopkg.in/yaml.v3"
)

// SEO holds the search metadata of a category page.
type SEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// CatalogEntry is the frontmatter of one category page.
type CatalogEntry struct {
	Title      string         `yaml:"title"`
	Emoji      string         `yaml:"emoji"`
	Container  string         `yaml:"container"`
	SEO        *SEO           `yaml:"seo"`
	Components Components     `yaml:"components"`
	Params     map[string]any `yaml:",inline"`
}

// ComponentDefinition describes one component listed on a category page.
type ComponentDefinition struct {
	Title     string   `yaml:"title"`
	Container string   `yaml:"container"`
	Creator   string   `yaml:"creator"`
	Variants  Variants `yaml:"variants"`
}

// VariantDefinition describes one variant of a component.
type VariantDefinition struct {
	Title     string `yaml:"title"`
	Container string `yaml:"container"`
}

// Component pairs a component id with its definition.
type Component struct {
	ID         string
	Definition ComponentDefinition
}

// Variant pairs a variant id with its definition.
type Variant struct {
	ID         string
	Definition VariantDefinition
}

// Components is a mapping from component id to definition that keeps the
// order in which the keys were declared.
type Components []Component

// Variants is the ordered variant mapping of a component.
type Variants []Variant

func (c *Components) UnmarshalYAML(node *yaml.Node) error {
	out := Components{}
	err := decodeOrdered(node, "components", func(id string, value *yaml.Node) error {
		var def ComponentDefinition
		if err := value.Decode(&def); err != nil {
			return err
		}
		out = append(out, Component{ID: id, Definition: def})
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

func (v *Variants) UnmarshalYAML(node *yaml.Node) error {
	out := Variants{}
	err := decodeOrdered(node, "variants", func(id string, value *yaml.Node) error {
		var def VariantDefinition
		if err := value.Decode(&def); err != nil {
			return err
		}
		out = append(out, Variant{ID: id, Definition: def})
		return nil
	})
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// decodeOrdered walks a mapping node in declaration order.
func decodeOrdered(node *yaml.Node, field string, fn func(id string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping of id to definition", node.Line, field)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var id string
		if err := key.Decode(&id); err != nil {
			return fmt.Errorf("line %d: %s key: %w", key.Line, field, err)
		}
		if id == "" {
			return fmt.Errorf("line %d: %s key is empty", key.Line, field)
		}
		if seen[id] {
			return fmt.Errorf("line %d: %s.%s is defined more than once", key.Line, field, id)
		}
		seen[id] = true
		if value.Kind != yaml.MappingNode && value.ShortTag() != "!!null" {
			return fmt.Errorf("line %d: %s.%s must be a mapping", value.Line, field, id)
		}
		if err := fn(id, value); err != nil {
			return fmt.Errorf("%s.%s: %w", field, id, err)
		}
	}
	return nil
}

// Validate checks the fields the page template cannot do without and
// reports every missing one by its dotted path.
func (e *CatalogEntry) Validate() error {
	var missing []string
	if e.SEO == nil {
		missing = append(missing, "seo")
	} else if strings.TrimSpace(e.SEO.Title) == "" {
		missing = append(missing, "seo.title")
	}
	if len(e.Components) == 0 {
		missing = append(missing, "components")
	}
	for _, c := range e.Components {
		if strings.TrimSpace(c.Definition.Title) == "" {
			missing = append(missing, "components."+c.ID+".title")
		}
		for _, v := range c.Definition.Variants {
			if strings.TrimSpace(v.Definition.Title) == "" {
				missing = append(missing, "components."+c.ID+".variants."+v.ID+".title")
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	errs := make([]error, 0, len(missing))
	for _, field := range missing {
		errs = append(errs, fmt.Errorf("%s is required", field))
	}
	sort.Strings(missing)
	return herrors.WrapError(errors.Join(errs...), herrors.CategoryValidation, "missing required fields").
		WithContext(herrors.ContextField, strings.Join(missing, ",")).
		Build()
}

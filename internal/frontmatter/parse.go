package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Document is a parsed content document.
type Document struct {
	Entry          CatalogEntry
	Frontmatter    []byte
	Body           []byte
	HadFrontmatter bool
}

// Parse splits raw and decodes its frontmatter into a CatalogEntry. Syntax
// errors and shape mismatches are returned as-is; callers classify them.
func Parse(raw []byte) (*Document, error) {
	front, body, had, err := Split(raw)
	if err != nil {
		return nil, err
	}
	doc := &Document{Frontmatter: front, Body: body, HadFrontmatter: had}
	if len(bytes.TrimSpace(front)) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(front, &doc.Entry); err != nil {
		return nil, err
	}
	return doc, nil
}

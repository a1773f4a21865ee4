package mdx

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdLinkTransformer rewrites links to other content documents so they point
// at the generated pages.
type mdLinkTransformer struct{}

func newMDLinkTransformer() parser.ASTTransformer {
	return &mdLinkTransformer{}
}

// Transform walks the AST and replaces .md/.mdx destinations with .html.
func (t *mdLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		link.Destination = rewriteDestination(link.Destination)
		return ast.WalkContinue, nil
	})
}

func rewriteDestination(dest []byte) []byte {
	if bytes.Contains(dest, []byte("://")) {
		return dest
	}
	path, fragment := dest, []byte(nil)
	if i := bytes.IndexByte(dest, '#'); i >= 0 {
		path, fragment = dest[:i], dest[i:]
	}
	for _, ext := range [][]byte{[]byte(".mdx"), []byte(".md")} {
		if bytes.HasSuffix(path, ext) {
			out := make([]byte, 0, len(dest)+len(".html"))
			out = append(out, bytes.TrimSuffix(path, ext)...)
			out = append(out, ".html"...)
			return append(out, fragment...)
		}
	}
	return dest
}

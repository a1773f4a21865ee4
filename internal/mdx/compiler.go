// Package mdx compiles MDX bodies: Markdown with embedded widget
// invocations (<List />) and {expression} references to a render scope.
package mdx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options configures a Compiler.
type Options struct {
	// Unsafe disables HTML sanitization of rendered output.
	Unsafe bool
	// EditML resolves editorial markup to its clean view before parsing.
	EditML bool
}

// Compiler turns MDX bodies into Bodies bound to a fixed widget registry.
type Compiler struct {
	widgets   Registry
	opts      Options
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewCompiler returns a compiler that resolves widgets against widgets.
func NewCompiler(widgets Registry, opts Options) *Compiler {
	c := &Compiler{
		widgets:   widgets,
		opts:      opts,
		sanitizer: newSanitizer(),
	}
	c.md = c.markdown()
	return c
}

func (c *Compiler) markdown(extra ...renderer.Option) goldmark.Markdown {
	rendererOpts := append([]renderer.Option{html.WithUnsafe()}, extra...)
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, mdxExtension{}),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-component").OnElements("div")
	return p
}

// Compile parses body and checks every widget and expression in it. All
// problems found are returned together, each prefixed with its line.
func (c *Compiler) Compile(ctx context.Context, body []byte) (*Body, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := body
	if c.opts.EditML {
		clean, err := cleanEditML(string(body))
		if err != nil {
			return nil, err
		}
		src = []byte(clean)
	}

	doc := c.md.Parser().Parse(text.NewReader(src))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs []error
	var used []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *WidgetNode:
			line := lineOf(src, node.Lines().At(0).Start)
			switch {
			case node.err != nil:
				errs = append(errs, fmt.Errorf("line %d: %w", line, node.err))
			case c.widgets[node.Name] == nil:
				errs = append(errs, fmt.Errorf("line %d: unknown widget <%s> (registered: %v)", line, node.Name, c.widgets.Names()))
			default:
				used = append(used, node.Name)
			}
			return ast.WalkSkipChildren, nil
		case *Expression:
			if node.err != nil {
				errs = append(errs, fmt.Errorf("line %d: %w", lineOf(src, node.offset), node.err))
			}
		case *ast.RawHTML:
			if node.Segments.Len() > 0 {
				seg := node.Segments.At(0)
				v := seg.Value(src)
				if len(v) > 1 && v[0] == '<' && isUpper(v[1]) {
					errs = append(errs, fmt.Errorf("line %d: widget %s must start its own line", lineOf(src, seg.Start), v))
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	sort.Strings(used)
	return &Body{source: src, doc: doc, compiler: c, widgets: compact(used)}, nil
}

func lineOf(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}

func compact(names []string) []string {
	out := names[:0]
	for i, n := range names {
		if i == 0 || n != names[i-1] {
			out = append(out, n)
		}
	}
	return out
}

// Body is a compiled MDX document. It is immutable and may be rendered
// concurrently with different scopes.
type Body struct {
	source   []byte
	doc      ast.Node
	compiler *Compiler
	widgets  []string
}

// Widgets returns the names of the widgets the body invokes, sorted.
func (b *Body) Widgets() []string {
	out := make([]string, len(b.widgets))
	copy(out, b.widgets)
	return out
}

// Render writes the body as HTML, resolving references against scope.
func (b *Body) Render(w io.Writer, scope Scope) error {
	nr := &scopeRenderer{scope: scope, widgets: b.compiler.widgets}
	md := b.compiler.markdown(renderer.WithNodeRenderers(util.Prioritized(nr, 100)))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, b.source, b.doc); err != nil {
		return err
	}
	out := buf.Bytes()
	if !b.compiler.opts.Unsafe {
		out = b.compiler.sanitizer.SanitizeBytes(out)
	}
	_, err := w.Write(out)
	return err
}

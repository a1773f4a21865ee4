package mdx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// widgetParser opens a WidgetNode block on a line starting with "<" and an
// upper-case letter, the MDX rule that separates components from HTML.
type widgetParser struct{}

func (p *widgetParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *widgetParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos+1 >= len(line) || line[pos] != '<' || !isUpper(line[pos+1]) {
		return nil, parser.NoChildren
	}
	node := &WidgetNode{}
	node.Lines().Append(segment)
	node.complete = tagComplete(node, reader.Source())
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *widgetParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	w := node.(*WidgetNode)
	if w.complete {
		return parser.Close
	}
	line, segment := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}
	w.Lines().Append(segment)
	w.complete = tagComplete(w, reader.Source())
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *widgetParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	w := node.(*WidgetNode)
	w.Name, w.Attrs, w.err = parseTag(widgetSource(w, reader.Source()))
}

func (p *widgetParser) CanInterruptParagraph() bool {
	return true
}

func (p *widgetParser) CanAcceptIndentedLine() bool {
	return false
}

func widgetSource(w *WidgetNode, source []byte) string {
	var b strings.Builder
	lines := w.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func tagComplete(w *WidgetNode, source []byte) bool {
	_, _, err := parseTag(widgetSource(w, source))
	return !errors.Is(err, errIncomplete)
}

// expressionParser turns {path} into an Expression node. Malformed
// expressions still produce a node; the compiler reports its error.
type expressionParser struct{}

func (p *expressionParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *expressionParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	node := &Expression{offset: segment.Start}
	if bytes.HasPrefix(bytes.TrimLeft(line[1:], " \t"), []byte("/*")) {
		return p.parseComment(node, block)
	}
	end := bytes.IndexByte(line, '}')
	if end < 0 {
		node.err = fmt.Errorf("unterminated expression %q", strings.TrimRight(string(line), "\r\n"))
		block.Advance(len(line))
		return node
	}
	inner := string(line[1:end])
	block.Advance(end + 1)
	if isComment(inner) {
		node.Comment = true
		return node
	}
	node.Path, node.err = parsePath(inner)
	return node
}

// parseComment consumes a {/* ... */} comment, which may span the lines of
// its paragraph.
func (p *expressionParser) parseComment(node *Expression, block text.Reader) ast.Node {
	l, pos := block.Position()
	first, _ := block.PeekLine()
	from := bytes.Index(first, []byte("/*")) + len("/*")
	for {
		line, _ := block.PeekLine()
		if line == nil {
			block.SetPosition(l, pos)
			node.err = fmt.Errorf("unterminated expression %q", strings.TrimRight(string(first), "\r\n"))
			block.Advance(len(first))
			return node
		}
		if n := commentEnd(line[from:]); n >= 0 {
			block.Advance(from + n)
			node.Comment = true
			return node
		}
		block.AdvanceLine()
		from = 0
	}
}

// commentEnd returns the length of line up to and including the "*/}" that
// closes a comment, or -1.
func commentEnd(line []byte) int {
	for i := 0; ; {
		j := bytes.Index(line[i:], []byte("*/"))
		if j < 0 {
			return -1
		}
		i += j + len("*/")
		rest := bytes.TrimLeft(line[i:], " \t")
		if len(rest) > 0 && rest[0] == '}' {
			return len(line) - len(rest) + 1
		}
	}
}

// mdxExtension wires the MDX parsers into a goldmark instance.
type mdxExtension struct{}

func (e mdxExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&widgetParser{}, 50)),
		parser.WithInlineParsers(util.Prioritized(&expressionParser{}, 150)),
		parser.WithASTTransformers(util.Prioritized(newMDLinkTransformer(), 100)),
	)
}

package mdx

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// KindWidget is the NodeKind of a widget invocation block.
var KindWidget = ast.NewNodeKind("Widget")

// KindExpression is the NodeKind of an inline {expression}.
var KindExpression = ast.NewNodeKind("Expression")

// AttrKind tells how a widget attribute value was written.
type AttrKind int

const (
	AttrString     AttrKind = iota // name="value"
	AttrExpression                 // name={path}
	AttrBool                       // name
)

// Attr is one attribute of a widget invocation.
type Attr struct {
	Name  string
	Kind  AttrKind
	Value string
	Path  []string
}

// WidgetNode is a block-level invocation such as <List />.
type WidgetNode struct {
	ast.BaseBlock
	Name  string
	Attrs []Attr

	complete bool
	err      error
}

func (n *WidgetNode) Kind() ast.NodeKind {
	return KindWidget
}

// IsRaw keeps the inline parser away from the tag text.
func (n *WidgetNode) IsRaw() bool {
	return true
}

func (n *WidgetNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// Expression is an inline reference to a scope value, or an MDX comment.
type Expression struct {
	ast.BaseInline
	Path    []string
	Comment bool

	offset int
	err    error
}

func (n *Expression) Kind() ast.NodeKind {
	return KindExpression
}

func (n *Expression) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Path": strings.Join(n.Path, ".")}, nil)
}

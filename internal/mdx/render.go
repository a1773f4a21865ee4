package mdx

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// scopeRenderer renders WidgetNode and Expression nodes for one Render call.
type scopeRenderer struct {
	scope   Scope
	widgets Registry
}

func (r *scopeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWidget, r.renderWidget)
	reg.Register(KindExpression, r.renderExpression)
}

func (r *scopeRenderer) renderExpression(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*Expression)
	if node.Comment {
		return ast.WalkContinue, nil
	}
	v, err := r.scope.Lookup(node.Path)
	if err != nil {
		return ast.WalkStop, err
	}
	s, err := formatValue(v)
	if err != nil {
		return ast.WalkStop, fmt.Errorf("{%s}: %w", strings.Join(node.Path, "."), err)
	}
	_, _ = w.Write(util.EscapeHTML([]byte(s)))
	return ast.WalkContinue, nil
}

func (r *scopeRenderer) renderWidget(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*WidgetNode)
	render, ok := r.widgets[node.Name]
	if !ok {
		return ast.WalkStop, fmt.Errorf("unknown widget <%s>", node.Name)
	}

	props := make(map[string]any, len(node.Attrs))
	for _, a := range node.Attrs {
		switch a.Kind {
		case AttrString:
			props[a.Name] = a.Value
		case AttrBool:
			props[a.Name] = true
		case AttrExpression:
			v, err := r.scope.Lookup(a.Path)
			if err != nil {
				return ast.WalkStop, fmt.Errorf("attribute %s of <%s>: %w", a.Name, node.Name, err)
			}
			props[a.Name] = v
		}
	}
	if err := render(w, Call{Name: node.Name, Props: props, Scope: r.scope}); err != nil {
		return ast.WalkStop, fmt.Errorf("widget <%s>: %w", node.Name, err)
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

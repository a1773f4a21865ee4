package mdx

import (
	"io"
	"sort"
)

// Call is one widget invocation with its attributes resolved.
type Call struct {
	Name  string
	Props map[string]any
	Scope Scope
}

// Prop returns the named prop, falling back to the scope value of the same
// name when the invocation did not pass it.
func (c Call) Prop(name string) (any, bool) {
	if v, ok := c.Props[name]; ok {
		return v, true
	}
	v, ok := c.Scope[name]
	return v, ok
}

// Widget renders one invocation as HTML.
type Widget func(w io.Writer, call Call) error

// Registry maps widget names to their render functions.
type Registry map[string]Widget

// Names returns the registered widget names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

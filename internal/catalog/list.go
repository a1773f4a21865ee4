package catalog

import (
	"fmt"
	"html/template"
	"io"

	"hyperui/internal/mdx"
)

// ListWidget is the name category bodies use to render their components.
const ListWidget = "List"

// Widgets returns the registry available to category page bodies.
func Widgets() mdx.Registry {
	return mdx.Registry{
		ListWidget: renderList,
	}
}

var listTemplate = template.Must(template.New("list").Parse(`<ul class="space-y-12">
{{- range $c := .Components}}
  <li id="component-{{$c.ID}}">
    <div class="flex items-center justify-between">
      <h2>{{$c.Title}}</h2>
      {{- if $c.Creator}}
      <p class="text-sm">Created by <a href="https://github.com/{{$c.Creator}}">{{$c.Creator}}</a></p>
      {{- end}}
    </div>
    <div class="{{if $c.Container}}{{$c.Container}}{{else}}{{$.Container}}{{end}}" data-component="{{$.Slug}}/{{$c.ID}}"></div>
    {{- if $c.Variants}}
    <ul class="mt-4 space-y-4">
      {{- range $v := $c.Variants}}
      <li id="component-{{$c.ID}}-{{$v.ID}}">
        <h3>{{$v.Title}}</h3>
        <div class="{{if $v.Container}}{{$v.Container}}{{else if $c.Container}}{{$c.Container}}{{else}}{{$.Container}}{{end}}"></div>
      </li>
      {{- end}}
    </ul>
    {{- end}}
  </li>
{{- end}}
</ul>`))

type listData struct {
	Slug       string
	Container  string
	Components []RenderableComponent
}

// renderList renders the component listing. It takes componentsArray and
// componentContainer from its props, or from the page scope when omitted.
func renderList(w io.Writer, call mdx.Call) error {
	data := listData{}

	raw, ok := call.Prop(ScopeComponentsArray)
	if !ok {
		return fmt.Errorf("%s is not bound", ScopeComponentsArray)
	}
	components, ok := raw.([]RenderableComponent)
	if !ok {
		return fmt.Errorf("%s must be a component list, got %T", ScopeComponentsArray, raw)
	}
	data.Components = components

	if raw, ok := call.Prop(ScopeComponentContainer); ok {
		container, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%s must be a string, got %T", ScopeComponentContainer, raw)
		}
		data.Container = container
	}
	if raw, ok := call.Scope[ScopeComponentSlug]; ok {
		data.Slug, _ = raw.(string)
	}
	return listTemplate.Execute(w, data)
}

package markdown

import (
	"io"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// OverrideFunc renders a node in place of the default HTML renderer.
// fallback is the default render func for the node kind and may be nil
// when the default renderer does not handle that kind.
type OverrideFunc func(w util.BufWriter, source []byte, n ast.Node, entering bool, fallback renderer.NodeRendererFunc) (ast.WalkStatus, error)

// Overrides maps node kinds to custom render funcs. Kinds not present use
// the default CommonMark HTML rendering.
type Overrides map[ast.NodeKind]OverrideFunc

// Render writes the HTML for t to w, applying overrides.
// A fresh renderer is built per call, so Render is safe for concurrent use.
func (p *Parser) Render(w io.Writer, t *Tree, overrides Overrides) error {
	d := newDispatcher(p.htmlOptions(), overrides)
	r := renderer.NewRenderer(renderer.WithNodeRenderers(util.Prioritized(d, 1000)))
	return r.Render(w, t.Source, t.Root)
}

// funcTable captures the render funcs a NodeRenderer registers.
type funcTable map[ast.NodeKind]renderer.NodeRendererFunc

func (t funcTable) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	t[kind] = fn
}

// dispatcher is a NodeRenderer keyed by node kind: overridden kinds go to
// their OverrideFunc, everything else to the default HTML renderer.
type dispatcher struct {
	defaults  funcTable
	overrides Overrides
}

func newDispatcher(opts []html.Option, overrides Overrides) *dispatcher {
	defaults := funcTable{}
	html.NewRenderer(opts...).RegisterFuncs(defaults)
	return &dispatcher{defaults: defaults, overrides: overrides}
}

func (d *dispatcher) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for kind, fn := range d.defaults {
		if _, ok := d.overrides[kind]; ok {
			continue
		}
		reg.Register(kind, fn)
	}
	for kind, override := range d.overrides {
		fallback := d.defaults[kind]
		reg.Register(kind, func(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
			return override(w, source, n, entering, fallback)
		})
	}
}

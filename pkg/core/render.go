package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/errdocs/pkg/markdown"
)

// Renderer turns documents into HTML fragments.
//
// The title heading becomes a self-referencing h2 anchored on the title
// error code, and code samples are wrapped in <figure><pre><code>. Other
// markdown renders as plain CommonMark.
type Renderer struct {
	parser *markdown.Parser
}

// NewRenderer creates a Renderer using parser's HTML settings.
func NewRenderer(parser *markdown.Parser) *Renderer {
	return &Renderer{parser: parser}
}

// Render returns the HTML for a single document.
func (r *Renderer) Render(doc Document) (string, error) {
	if doc.Markdown == nil {
		return "", fmt.Errorf("%s: %w", doc.FilePath, ErrNotParsed)
	}

	var buf bytes.Buffer
	if err := r.parser.Render(&buf, doc.Markdown, documentOverrides(doc)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", doc.FilePath, err)
	}
	return buf.String(), nil
}

// RenderCorpus concatenates the HTML of every document, in the given order,
// without any enclosing wrapper.
func (r *Renderer) RenderCorpus(docs []Document) (string, error) {
	var b strings.Builder
	for _, doc := range docs {
		html, err := r.Render(doc)
		if err != nil {
			return "", err
		}
		b.WriteString(html)
	}
	return b.String(), nil
}

func documentOverrides(doc Document) markdown.Overrides {
	return markdown.Overrides{
		ast.KindHeading:         titleHeading(doc.TitleErrorCode),
		ast.KindCodeBlock:       figureCodeBlock,
		ast.KindFencedCodeBlock: figureCodeBlock,
	}
}

func titleHeading(code string) markdown.OverrideFunc {
	anchor := util.EscapeHTML([]byte(code))
	return func(w util.BufWriter, source []byte, n ast.Node, entering bool, fallback renderer.NodeRendererFunc) (ast.WalkStatus, error) {
		if n.(*ast.Heading).Level != 1 {
			return fallback(w, source, n, entering)
		}
		if entering {
			_, _ = w.WriteString(`<h2><a class="self-reference" href="#`)
			_, _ = w.Write(anchor)
			_, _ = w.WriteString(`">`)
		} else {
			_, _ = w.WriteString("</a></h2>")
		}
		return ast.WalkContinue, nil
	}
}

func figureCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool, _ renderer.NodeRendererFunc) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<figure><pre><code>")
	_, _ = w.Write(util.EscapeHTML([]byte(markdown.BlockText(n, source))))
	_, _ = w.WriteString("</code></pre></figure>")
	return ast.WalkSkipChildren, nil
}

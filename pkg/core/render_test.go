package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/markdown"
)

func TestRenderer_Render(t *testing.T) {
	p := markdown.NewParser()
	r := core.NewRenderer(p)

	src := "# E0001: bad <thing>\n\ntext\n\n```js\nlet x = <1>;\n```\n\n## Notes\n\n    a && b\n"
	doc := core.ParseDocument("E0001.md", []byte(src), p)

	got, err := r.Render(doc)
	require.NoError(t, err)

	want := `<h2><a class="self-reference" href="#E0001">E0001: bad <thing></a></h2>` +
		"<p>text</p>\n" +
		"<figure><pre><code>let x = &lt;1&gt;;\n</code></pre></figure>" +
		"<h2>Notes</h2>\n" +
		"<figure><pre><code>a &amp;&amp; b\n</code></pre></figure>"
	assert.Equal(t, want, got)
}

func TestRenderer_CRLFSource(t *testing.T) {
	p := markdown.NewParser()
	r := core.NewRenderer(p)

	doc := core.ParseDocument("E0001.md", []byte("# E0001: crlf\r\n\r\n```\r\nlet x;\r\n```\r\n"), p)
	require.Len(t, doc.CodeBlocks, 1)
	assert.Equal(t, "let x;\n", doc.CodeBlocks[0].Text)

	got, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, `<h2><a class="self-reference" href="#E0001">E0001: crlf</a></h2>`+
		"<figure><pre><code>let x;\n</code></pre></figure>", got)
}

func TestRenderer_EscapesAnchor(t *testing.T) {
	p := markdown.NewParser(markdown.WithUnsafeHTML(false))
	r := core.NewRenderer(p)

	doc := core.ParseDocument("x.md", []byte("# a\"b&c: desc\n"), p)
	got, err := r.Render(doc)
	require.NoError(t, err)
	assert.Contains(t, got, `href="#a&quot;b&amp;c"`)
}

func TestRenderer_UntitledDocument(t *testing.T) {
	p := markdown.NewParser()
	r := core.NewRenderer(p)

	doc := core.ParseDocument("x.md", []byte("# no title here\n"), p)
	got, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, `<h2><a class="self-reference" href="#">no title here</a></h2>`, got)
}

func TestRenderer_RenderCorpus(t *testing.T) {
	p := markdown.NewParser()
	r := core.NewRenderer(p)

	docs := []core.Document{
		core.ParseDocument("E0001.md", []byte("# E0001: one\n"), p),
		core.ParseDocument("E0002.md", []byte("# E0002: two\n"), p),
	}

	got, err := r.RenderCorpus(docs)
	require.NoError(t, err)
	assert.Equal(t,
		`<h2><a class="self-reference" href="#E0001">E0001: one</a></h2>`+
			`<h2><a class="self-reference" href="#E0002">E0002: two</a></h2>`,
		got)

	empty, err := r.RenderCorpus(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRenderer_NotParsed(t *testing.T) {
	r := core.NewRenderer(markdown.NewParser())

	_, err := r.Render(core.Document{FilePath: "E0001.md"})
	assert.ErrorIs(t, err, core.ErrNotParsed)
}

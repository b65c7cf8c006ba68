// Package markdown wraps a CommonMark parser and exposes the parsed document
// as a flat stream of block events plus the AST needed to render it again.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// EventKind identifies the type of a parse event.
type EventKind int

const (
	EventHeadingOpen EventKind = iota + 1
	EventHeadingClose
	EventInline
	EventCodeBlock
	EventFencedCodeBlock
)

func (k EventKind) String() string {
	switch k {
	case EventHeadingOpen:
		return "heading_open"
	case EventHeadingClose:
		return "heading_close"
	case EventInline:
		return "inline"
	case EventCodeBlock:
		return "code_block"
	case EventFencedCodeBlock:
		return "fence"
	}
	return "unknown"
}

// Event is a single entry of the block event stream.
type Event struct {
	Kind    EventKind
	Level   int    // heading level, zero for other kinds
	Content string // raw inline source or raw code block text
	Info    string // fence info string
	Line    int    // 1-based source line, zero when unknown
}

// Tree is the result of parsing a markdown source.
// It is never mutated after Parse returns.
type Tree struct {
	Source []byte
	Root   ast.Node
	Events []Event
}

// Parser is a stateless CommonMark parser. A single value can be shared
// between goroutines.
type Parser struct {
	md         goldmark.Markdown
	unsafeHTML bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithUnsafeHTML controls whether raw HTML in the source is passed through
// to the rendered output. Enabled by default.
func WithUnsafeHTML(enabled bool) Option {
	return func(p *Parser) {
		p.unsafeHTML = enabled
	}
}

// NewParser creates a CommonMark parser without extensions.
func NewParser(opts ...Option) *Parser {
	p := &Parser{unsafeHTML: true}
	for _, opt := range opts {
		opt(p)
	}
	p.md = goldmark.New()
	return p
}

// Parse parses src into a Tree. Parsing never fails: any input is valid
// CommonMark. CRLF and lone CR line endings are turned into LF first, so
// Tree.Source may differ from src.
func (p *Parser) Parse(src []byte) *Tree {
	src = normalizeNewlines(src)
	root := p.md.Parser().Parse(text.NewReader(src))
	return &Tree{
		Source: src,
		Root:   root,
		Events: collectEvents(root, src),
	}
}

func normalizeNewlines(src []byte) []byte {
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(src, []byte("\r"), []byte("\n"))
}

func (p *Parser) htmlOptions() []html.Option {
	if p.unsafeHTML {
		return []html.Option{html.WithUnsafe()}
	}
	return nil
}

func collectEvents(root ast.Node, src []byte) []Event {
	var events []Event
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Heading:
			if !entering {
				events = append(events, Event{Kind: EventHeadingClose, Level: n.Level})
				return ast.WalkContinue, nil
			}
			line := lineOf(n, src)
			events = append(events,
				Event{Kind: EventHeadingOpen, Level: n.Level, Line: line},
				Event{Kind: EventInline, Content: InlineText(n, src), Line: line},
			)
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.TextBlock:
			if entering {
				events = append(events, Event{Kind: EventInline, Content: InlineText(n, src), Line: lineOf(n, src)})
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			if entering {
				events = append(events, Event{Kind: EventCodeBlock, Content: BlockText(n, src), Line: lineOf(n, src)})
			}

		case *ast.FencedCodeBlock:
			if entering {
				ev := Event{Kind: EventFencedCodeBlock, Content: BlockText(n, src), Line: lineOf(n, src)}
				if n.Info != nil {
					ev.Info = string(n.Info.Segment.Value(src))
				}
				events = append(events, ev)
			}
		}
		return ast.WalkContinue, nil
	})
	return events
}

// InlineText returns the raw inline source of a block, lines joined by "\n".
func InlineText(n ast.Node, src []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		seg := lines.At(i)
		b.Write(bytes.TrimRight(seg.Value(src), "\r\n"))
	}
	return strings.TrimSpace(b.String())
}

// BlockText returns the raw content of a code block, including trailing newlines.
func BlockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

// lineOf reports the line a block starts on. Fenced blocks report the line
// of their opening fence.
func lineOf(n ast.Node, src []byte) int {
	if f, ok := n.(*ast.FencedCodeBlock); ok {
		if f.Info != nil {
			return lineAt(src, f.Info.Segment.Start)
		}
		if line := firstLine(n, src); line > 1 {
			return line - 1
		}
		return 0
	}
	return firstLine(n, src)
}

func firstLine(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return lineAt(src, lines.At(0).Start)
}

func lineAt(src []byte, offset int) int {
	if offset < 0 || offset > len(src) {
		return 0
	}
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}

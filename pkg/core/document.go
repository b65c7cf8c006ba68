package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/errdocs/pkg/markdown"
)

// titlePattern splits a title heading into "code: description".
// The code is everything up to the first colon.
var titlePattern = regexp.MustCompile(`^([^:]*):\s*(.*)$`)

// CodeBlock is a single code sample of a document.
type CodeBlock struct {
	Text   string
	Line   int    // 1-based line of the block in the markdown source
	Fenced bool   // false for indented code blocks
	Info   string // fence info string, e.g. the language tag
}

// Document is a parsed error documentation page.
// It is created once per file and never mutated afterwards.
type Document struct {
	FilePath              string
	TitleErrorCode        string
	TitleErrorDescription string
	TitleLine             int
	CodeBlocks            []CodeBlock

	// Markdown is kept so the document can be rendered without re-parsing.
	Markdown *markdown.Tree
}

// FilePathErrorCode is the error code implied by the file name.
func (d Document) FilePathErrorCode() string {
	return strings.TrimSuffix(filepath.Base(d.FilePath), ".md")
}

// ParseDocument builds a Document from markdown source.
//
// The title is taken from the first level-1 heading only. If that heading
// does not look like "code: description", both title fields stay empty and
// later level-1 headings are not considered.
//
// Every indented and fenced code block counts as a code sample, wherever it
// appears in the document.
func ParseDocument(filePath string, src []byte, parser *markdown.Parser) Document {
	tree := parser.Parse(src)
	doc := Document{
		FilePath: filePath,
		Markdown: tree,
	}

	var (
		inTitle   bool
		titleSeen bool
		titleLine int
		titleText strings.Builder
	)
	for _, ev := range tree.Events {
		switch ev.Kind {
		case markdown.EventHeadingOpen:
			if ev.Level == 1 && !titleSeen {
				inTitle = true
				titleLine = ev.Line
				titleText.Reset()
			}

		case markdown.EventInline:
			if inTitle {
				titleText.WriteString(ev.Content)
			}

		case markdown.EventHeadingClose:
			if inTitle {
				doc.TitleErrorCode, doc.TitleErrorDescription = splitTitle(titleText.String())
				doc.TitleLine = titleLine
				inTitle = false
				titleSeen = true
			}

		case markdown.EventCodeBlock, markdown.EventFencedCodeBlock:
			doc.CodeBlocks = append(doc.CodeBlocks, CodeBlock{
				Text:   ev.Content,
				Line:   ev.Line,
				Fenced: ev.Kind == markdown.EventFencedCodeBlock,
				Info:   ev.Info,
			})
		}
	}

	return doc
}

// ParseFile reads and parses a single documentation file.
func ParseFile(filePath string, parser *markdown.Parser) (Document, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return ParseDocument(filePath, src, parser), nil
}

func splitTitle(title string) (code, description string) {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

package core

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"
)

// Linter is the entry point to a linting engine. It is acquired once per
// validation run.
type Linter interface {
	// Start creates the engine context used for a whole run.
	Start(ctx context.Context) (LintProcess, error)
}

// LintProcess is a running engine context. Implementations must be safe for
// concurrent use, since documents may be validated in parallel.
type LintProcess interface {
	// NewSession creates an empty document session.
	NewSession(ctx context.Context) (LintSession, error)

	// Close releases the engine context.
	Close() error
}

// LintSession is a single source document fed to the engine. One session
// lints exactly one code sample and is then discarded.
type LintSession interface {
	// ReplaceText replaces the text covered by r.
	ReplaceText(r Range, text string) error

	// Lint returns every diagnostic the engine reports for the current text.
	Lint(ctx context.Context) ([]Diagnostic, error)

	// Close releases the session.
	Close() error
}

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span of text. The zero Range is an empty range at
// the start of the document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ApplyEdit replaces the text covered by r with replacement.
// Characters past the end of a line are clamped to the line end.
func ApplyEdit(text string, r Range, replacement string) (string, error) {
	start, err := offsetOf(text, r.Start)
	if err != nil {
		return "", err
	}
	end, err := offsetOf(text, r.End)
	if err != nil {
		return "", err
	}
	if end < start {
		return "", fmt.Errorf("invalid range: end %v before start %v", r.End, r.Start)
	}
	return text[:start] + replacement + text[end:], nil
}

func offsetOf(text string, pos Position) (int, error) {
	if pos.Line < 0 || pos.Character < 0 {
		return 0, fmt.Errorf("invalid position %v", pos)
	}

	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("line %d out of range", pos.Line)
		}
		offset += i + 1
	}

	units := 0
	for i, r := range text[offset:] {
		if units >= pos.Character || r == '\n' {
			return offset + i, nil
		}
		units += utf16.RuneLen(r)
	}
	return len(text), nil
}

// Package report writes validation problems for humans and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aretw0/errdocs/pkg/core"
)

// Format names an output format for problems.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatSARIF}

// Options tune the output.
type Options struct {
	Color       bool   // text only
	ToolVersion string // sarif only
}

// Write renders problems to w in the given format.
func Write(w io.Writer, format Format, problems []core.Problem, opts Options) error {
	switch format {
	case FormatText, "":
		return WriteText(w, problems, opts.Color)
	case FormatJSON:
		return WriteJSON(w, problems)
	case FormatSARIF:
		_, err := NewSARIF(opts.ToolVersion, problems).WriteTo(w)
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteText writes one "path: error: message" line per problem.
func WriteText(w io.Writer, problems []core.Problem, colored bool) error {
	pathColor := color.New(color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{pathColor, errorColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, p := range problems {
		if _, err := fmt.Fprintf(w, "%s: %s %s\n",
			pathColor.Sprint(p.Path), errorColor.Sprint("error:"), p.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the problems as an indented JSON array. An empty list is
// written as [] rather than null.
func WriteJSON(w io.Writer, problems []core.Problem) error {
	if problems == nil {
		problems = []core.Problem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(problems)
}

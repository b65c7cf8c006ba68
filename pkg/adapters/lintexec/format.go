package lintexec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/aretw0/errdocs/pkg/core"
)

// Format names a linter output format.
type Format string

const (
	// FormatQuickfixJSON is a JSON object holding a Vim quickfix list:
	// {"qflist": [{"code": "E0001", "text": "...", "lnum": 1, "col": 1}]}.
	FormatQuickfixJSON Format = "vim-qflist-json"

	// FormatGNU is one "file:line:col: severity: message [code]" per line.
	FormatGNU Format = "gnu-like"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatQuickfixJSON, FormatGNU}

type parseFunc func(out []byte) ([]core.Diagnostic, error)

func parserFor(f Format) (parseFunc, error) {
	switch f {
	case FormatQuickfixJSON:
		return parseQuickfixJSON, nil
	case FormatGNU:
		return parseGNU, nil
	}
	return nil, fmt.Errorf("unsupported linter output format %q", f)
}

type quickfixEntry struct {
	Code string `json:"code"`
	Text string `json:"text"`
	Type string `json:"type"`
	Lnum int    `json:"lnum"`
	Col  int    `json:"col"`
}

// parseQuickfixJSON accepts zero or more concatenated qflist objects.
func parseQuickfixJSON(out []byte) ([]core.Diagnostic, error) {
	var diags []core.Diagnostic
	dec := json.NewDecoder(bytes.NewReader(out))
	for dec.More() {
		var list struct {
			Qflist []quickfixEntry `json:"qflist"`
		}
		if err := dec.Decode(&list); err != nil {
			return nil, err
		}
		for _, e := range list.Qflist {
			diags = append(diags, core.Diagnostic{
				Code:     e.Code,
				Message:  e.Text,
				Severity: quickfixSeverity(e.Type),
				Line:     e.Lnum,
				Column:   e.Col,
			})
		}
	}
	return diags, nil
}

func quickfixSeverity(t string) string {
	switch t {
	case "E", "e":
		return "error"
	case "W", "w":
		return "warning"
	case "I", "i", "N", "n":
		return "note"
	}
	return t
}

var gnuLine = regexp.MustCompile(`^.*?:(\d+):(\d+): (\w+): (.*?)(?: \[([^\]]+)\])?$`)

// parseGNU ignores lines that are not diagnostics.
func parseGNU(out []byte) ([]core.Diagnostic, error) {
	var diags []core.Diagnostic
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := gnuLine.FindStringSubmatch(sc.Text())
		if m == nil || m[5] == "" {
			continue
		}
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		diags = append(diags, core.Diagnostic{
			Code:     m[5],
			Message:  m[4],
			Severity: m[3],
			Line:     line,
			Column:   col,
		})
	}
	return diags, sc.Err()
}

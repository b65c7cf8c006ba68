package report

import (
	"encoding/json"
	"io"

	"github.com/aretw0/errdocs/pkg/core"
)

// ToolName is the driver name reported in SARIF output.
const ToolName = "errdocs"

// SARIFLog represents a SARIF 2.1.0 document.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
type SARIFLog struct {
	Version string `json:"version"`
	Schema  string `json:"$schema,omitempty"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single analysis run.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool identifies the analysis tool that produced the results.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver describes the tool's identity and the rules it checks.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one kind of problem.
type Rule struct {
	ID               string  `json:"id"`
	ShortDescription Message `json:"shortDescription"`
}

// Result represents a single problem.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// Message contains a text description.
type Message struct {
	Text string `json:"text"`
}

// Location identifies where the problem was found.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation pinpoints the file and region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

// ArtifactLocation identifies the file.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region identifies the line within the file.
type Region struct {
	StartLine int `json:"startLine"`
}

var problemKinds = []core.ProblemKind{
	core.ProblemTitleMismatch,
	core.ProblemMissingCodeBlocks,
	core.ProblemMissingExpectedError,
	core.ProblemUnexpectedErrorCode,
	core.ProblemUnexpectedErrors,
	core.ProblemLintTimeout,
}

// NewSARIF builds a SARIF log holding one error result per problem.
func NewSARIF(toolVersion string, problems []core.Problem) *SARIFLog {
	rules := make([]Rule, len(problemKinds))
	for i, k := range problemKinds {
		rules[i] = Rule{ID: string(k), ShortDescription: Message{Text: k.Description()}}
	}

	results := make([]Result, 0, len(problems))
	for _, p := range problems {
		loc := PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: p.Path}}
		if p.Line > 0 {
			loc.Region = &Region{StartLine: p.Line}
		}
		results = append(results, Result{
			RuleID:    string(p.Kind),
			Level:     "error",
			Message:   Message{Text: p.Message},
			Locations: []Location{{PhysicalLocation: loc}},
		})
	}

	return &SARIFLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []Run{{
			Tool:    Tool{Driver: Driver{Name: ToolName, Version: toolVersion, Rules: rules}},
			Results: results,
		}},
	}
}

// WriteTo writes the SARIF log as JSON to w.
func (l *SARIFLog) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

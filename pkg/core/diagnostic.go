package core

// Diagnostic is a single finding reported by the linter.
// Only Code is relied upon by the validator.
type Diagnostic struct {
	Code     string `json:"code" msgpack:"code"`
	Message  string `json:"message,omitempty" msgpack:"message,omitempty"`
	Severity string `json:"severity,omitempty" msgpack:"severity,omitempty"`
	Line     int    `json:"line,omitempty" msgpack:"line,omitempty"`
	Column   int    `json:"column,omitempty" msgpack:"column,omitempty"`
}

package core

import (
	"fmt"
	"strings"
)

// ProblemKind classifies a documentation defect.
type ProblemKind string

const (
	ProblemTitleMismatch        ProblemKind = "title-mismatch"
	ProblemMissingCodeBlocks    ProblemKind = "missing-code-blocks"
	ProblemMissingExpectedError ProblemKind = "missing-expected-error"
	ProblemUnexpectedErrorCode  ProblemKind = "unexpected-error-code"
	ProblemUnexpectedErrors     ProblemKind = "unexpected-errors"
	ProblemLintTimeout          ProblemKind = "lint-timeout"
)

// Description is a short human readable summary of the kind.
func (k ProblemKind) Description() string {
	switch k {
	case ProblemTitleMismatch:
		return "The file name must match the error code in the title heading."
	case ProblemMissingCodeBlocks:
		return "Every error document needs at least one code block."
	case ProblemMissingExpectedError:
		return "The first code block must trigger the documented error."
	case ProblemUnexpectedErrorCode:
		return "The first code block must only trigger the documented error."
	case ProblemUnexpectedErrors:
		return "Code blocks after the first must not trigger any error."
	case ProblemLintTimeout:
		return "The linter did not finish in time."
	}
	return string(k)
}

// Problem is a documentation defect found during validation.
type Problem struct {
	Path    string      `json:"path"`
	Line    int         `json:"line,omitempty"`
	Kind    ProblemKind `json:"kind"`
	Code    string      `json:"code,omitempty"` // offending error code, if any
	Message string      `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: error: %s", p.Path, p.Message)
}

// ValidationError carries every problem found in a validation run.
// It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("%s:\n%s", ErrValidationFailed, strings.Join(lines, "\n"))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

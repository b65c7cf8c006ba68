package core

import "errors"

// Common errors.
var (
	ErrEmptyCorpus       = errors.New("found no error documents")
	ErrValidationFailed  = errors.New("found problems in error documents")
	ErrLintTimeout       = errors.New("linter timed out")
	ErrNotParsed         = errors.New("document has no parsed markdown")
	ErrNotWatchable      = errors.New("repository does not support watching")
	ErrLinterUnavailable = errors.New("linter is not available")
)

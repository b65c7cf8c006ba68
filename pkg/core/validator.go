package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Validator cross-checks documents against the linter.
//
// For each document the title code must match the file name and there must
// be at least one code sample. The first sample must produce the documented
// error and nothing else; every other sample must lint clean.
type Validator struct {
	linter  Linter
	logger  *slog.Logger
	timeout time.Duration
	jobs    int
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLogger sets the logger used by the validator.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithTimeout bounds the time spent linting a single code sample.
// A sample that times out is reported as a problem. Zero disables the limit.
func WithTimeout(d time.Duration) ValidatorOption {
	return func(v *Validator) {
		v.timeout = d
	}
}

// WithJobs sets how many documents are validated concurrently.
// Values below 1 mean one.
func WithJobs(n int) ValidatorOption {
	return func(v *Validator) {
		v.jobs = max(n, 1)
	}
}

// NewValidator creates a Validator backed by linter.
func NewValidator(linter Linter, opts ...ValidatorOption) *Validator {
	v := &Validator{
		linter: linter,
		logger: slog.Default(),
		jobs:   1,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every document and returns the problems found, in corpus
// order and then sample order. Problems never stop the scan; only linter
// failures do, and those are returned as an error.
//
// The linter is started lazily, so a corpus without code samples never
// touches the engine.
func (v *Validator) Validate(ctx context.Context, docs []Document) ([]Problem, error) {
	var started atomic.Bool
	start := sync.OnceValues(func() (LintProcess, error) {
		started.Store(true)
		v.logger.Debug("starting linter")
		proc, err := v.linter.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to start linter: %w", err)
		}
		return proc, nil
	})
	defer func() {
		if !started.Load() {
			return
		}
		if proc, err := start(); err == nil {
			if cerr := proc.Close(); cerr != nil {
				v.logger.Warn("failed to close linter", "error", cerr)
			}
		}
	}()

	results := make([][]Problem, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.jobs)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			problems, err := v.validateDocument(gctx, start, docs[i])
			if err != nil {
				return err
			}
			results[i] = problems
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []Problem
	for _, r := range results {
		problems = append(problems, r...)
	}
	v.logger.Debug("validation finished", "documents", len(docs), "problems", len(problems))
	return problems, nil
}

func (v *Validator) validateDocument(ctx context.Context, start func() (LintProcess, error), doc Document) ([]Problem, error) {
	var problems []Problem

	switch fileCode := doc.FilePathErrorCode(); {
	case fileCode == "":
		problems = append(problems, Problem{
			Path:    doc.FilePath,
			Line:    doc.TitleLine,
			Kind:    ProblemTitleMismatch,
			Code:    doc.TitleErrorCode,
			Message: "file name has no error code",
		})
	case doc.TitleErrorCode != fileCode:
		problems = append(problems, Problem{
			Path:    doc.FilePath,
			Line:    doc.TitleLine,
			Kind:    ProblemTitleMismatch,
			Code:    doc.TitleErrorCode,
			Message: fmt.Sprintf("file name doesn't match error code in title (%s)", doc.TitleErrorCode),
		})
	}
	if len(doc.CodeBlocks) == 0 {
		problems = append(problems, Problem{
			Path:    doc.FilePath,
			Kind:    ProblemMissingCodeBlocks,
			Message: "missing code blocks",
		})
		return problems, nil
	}

	proc, err := start()
	if err != nil {
		return nil, err
	}

	for i, block := range doc.CodeBlocks {
		v.logger.Debug("linting code block", "path", doc.FilePath, "block", i+1, "line", block.Line)
		diags, err := v.lint(ctx, proc, block.Text)
		if errors.Is(err, ErrLintTimeout) {
			problems = append(problems, Problem{
				Path:    doc.FilePath,
				Line:    block.Line,
				Kind:    ProblemLintTimeout,
				Message: fmt.Sprintf("timed out linting code block #%d", i+1),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to lint code block #%d: %w", doc.FilePath, i+1, err)
		}
		problems = append(problems, CheckSample(doc, i, diags)...)
	}

	return problems, nil
}

// CheckSample applies the positional expectations to the diagnostics of
// code block index of doc.
func CheckSample(doc Document, index int, diags []Diagnostic) []Problem {
	var line int
	if index < len(doc.CodeBlocks) {
		line = doc.CodeBlocks[index].Line
	}

	if index > 0 {
		if len(diags) == 0 {
			return nil
		}
		return []Problem{{
			Path:    doc.FilePath,
			Line:    line,
			Kind:    ProblemUnexpectedErrors,
			Code:    diags[0].Code,
			Message: fmt.Sprintf("expected no error in code block #%d but found errors", index+1),
		}}
	}

	if len(diags) == 0 {
		return []Problem{{
			Path:    doc.FilePath,
			Line:    line,
			Kind:    ProblemMissingExpectedError,
			Code:    doc.TitleErrorCode,
			Message: "expected error in first code block but found no errors",
		}}
	}

	var problems []Problem
	for _, d := range diags {
		if d.Code == doc.TitleErrorCode {
			continue
		}
		problems = append(problems, Problem{
			Path:    doc.FilePath,
			Line:    line,
			Kind:    ProblemUnexpectedErrorCode,
			Code:    d.Code,
			Message: fmt.Sprintf("expected only %s errors in first code block but found %s", doc.TitleErrorCode, d.Code),
		})
	}
	return problems
}

// lint runs one sample through a fresh session and always closes it.
func (v *Validator) lint(ctx context.Context, proc LintProcess, text string) (diags []Diagnostic, err error) {
	sampleCtx := ctx
	if v.timeout > 0 {
		var cancel context.CancelFunc
		sampleCtx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}
	defer func() {
		// A killed engine rarely reports DeadlineExceeded itself.
		if err != nil && ctx.Err() == nil && errors.Is(sampleCtx.Err(), context.DeadlineExceeded) {
			diags, err = nil, ErrLintTimeout
		}
	}()

	session, err := proc.NewSession(sampleCtx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close lint session: %w", cerr)
		}
	}()

	if err := session.ReplaceText(Range{}, text); err != nil {
		return nil, err
	}
	return session.Lint(sampleCtx)
}

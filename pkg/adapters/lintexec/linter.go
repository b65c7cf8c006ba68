// Package lintexec runs an external linter executable as the linting engine.
//
// Each code sample is piped to a fresh process on stdin and the process
// output is parsed into diagnostics. The default engine is quick-lint-js.
package lintexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/errdocs/pkg/core"
)

// waitDelay bounds how long a killed linter may keep its output pipes open.
const waitDelay = 500 * time.Millisecond

// DefaultCommand lints stdin with quick-lint-js.
var DefaultCommand = []string{"quick-lint-js", "--stdin", "--output-format=vim-qflist-json"}

// Linter implements core.Linter by executing a command per sample.
type Linter struct {
	config Config
}

// Config holds the configuration for the command linter.
type Config struct {
	Command []string // argv; the sample is written to stdin
	Format  Format
	Dir     string // working directory, used for config file discovery
	Logger  *slog.Logger
}

// New creates a command linter. An empty command means DefaultCommand.
func New(config Config) *Linter {
	if len(config.Command) == 0 {
		config.Command = DefaultCommand
	}
	if config.Format == "" {
		config.Format = FormatQuickfixJSON
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Linter{config: config}
}

// Identity describes the command and output format. Cached diagnostics are
// only valid for the same identity.
func (l *Linter) Identity() string {
	return strings.Join(l.config.Command, " ") + "|" + string(l.config.Format)
}

// Start resolves the executable. The returned process is stateless and safe
// for concurrent use.
func (l *Linter) Start(ctx context.Context) (core.LintProcess, error) {
	parse, err := parserFor(l.config.Format)
	if err != nil {
		return nil, err
	}
	path, err := exec.LookPath(l.config.Command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrLinterUnavailable, err)
	}
	l.config.Logger.Debug("resolved linter", "path", path, "format", l.config.Format)
	return &process{linter: l, path: path, parse: parse}, nil
}

type process struct {
	linter *Linter
	path   string
	parse  parseFunc
	closed atomic.Bool
}

func (p *process) NewSession(ctx context.Context) (core.LintSession, error) {
	if p.closed.Load() {
		return nil, errors.New("linter process is closed")
	}
	return &session{process: p}, nil
}

func (p *process) Close() error {
	p.closed.Store(true)
	return nil
}

type session struct {
	process *process
	text    string
}

func (s *session) ReplaceText(r core.Range, text string) error {
	updated, err := core.ApplyEdit(s.text, r, text)
	if err != nil {
		return err
	}
	s.text = updated
	return nil
}

func (s *session) Lint(ctx context.Context) ([]core.Diagnostic, error) {
	return s.process.run(ctx, s.text)
}

func (s *session) Close() error {
	s.text = ""
	return nil
}

// run executes the linter on text. Linters exit non-zero when they report
// errors, so the exit status only matters when nothing could be parsed.
func (p *process) run(ctx context.Context, text string) ([]core.Diagnostic, error) {
	args := p.linter.config.Command[1:]
	p.linter.config.Logger.Debug("executing linter", "args", args, "dir", p.linter.config.Dir)

	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Dir = p.linter.config.Dir
	cmd.WaitDelay = waitDelay
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, fmt.Errorf("failed to run linter: %w", runErr)
	}

	diags, err := p.parse(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse linter output: %w\nOutput: %s", err, stdout.String())
	}
	if runErr != nil && len(diags) == 0 {
		return nil, fmt.Errorf("linter failed: %w\nOutput: %s", runErr, strings.TrimSpace(stderr.String()))
	}
	return diags, nil
}

var _ core.Linter = (*Linter)(nil)

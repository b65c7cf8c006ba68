package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/introspection"

	"github.com/aretw0/errdocs/pkg/core"
)

// Linter wraps another core.Linter, answering samples seen before from the
// store. The wrapped engine is only started on the first cache miss.
type Linter struct {
	inner    core.Linter
	identity string
	store    *Store
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Wrap returns a caching linter. identity must change whenever the inner
// linter could report different diagnostics for the same text.
func Wrap(inner core.Linter, identity string, store *Store, logger *slog.Logger) *Linter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linter{
		inner:    inner,
		identity: identity,
		store:    store,
		logger:   logger,
	}
}

// Start loads the store if needed. The store is pruned and saved when the
// process is closed, unless a sample failed to lint.
func (l *Linter) Start(ctx context.Context) (core.LintProcess, error) {
	if err := l.store.begin(); err != nil {
		l.logger.Warn("ignoring unreadable lint cache", "path", l.store.Path, "error", err)
	}

	p := &process{linter: l}
	p.start = sync.OnceValues(func() (core.LintProcess, error) {
		p.started.Store(true)
		return l.inner.Start(ctx)
	})
	return p, nil
}

type process struct {
	linter  *Linter
	start   func() (core.LintProcess, error)
	started atomic.Bool
	failed  atomic.Bool
}

func (p *process) NewSession(ctx context.Context) (core.LintSession, error) {
	return &session{process: p}, nil
}

func (p *process) Close() error {
	var err error
	if p.started.Load() {
		if inner, startErr := p.start(); startErr == nil {
			err = inner.Close()
		}
	}
	if p.failed.Load() {
		return err
	}

	p.linter.store.Prune()
	if serr := p.linter.store.Save(); serr != nil {
		p.linter.logger.Warn("failed to save lint cache", "path", p.linter.store.Path, "error", serr)
	}
	p.linter.logger.Debug("lint cache closed",
		"entries", p.linter.store.Len(),
		"hits", p.linter.hits.Load(),
		"misses", p.linter.misses.Load())
	return err
}

// lint answers from the store or runs text through a fresh inner session.
func (p *process) lint(ctx context.Context, text string) (diags []core.Diagnostic, err error) {
	key := Key(p.linter.identity, text)
	if cached, ok := p.linter.store.Get(key); ok {
		p.linter.hits.Add(1)
		return cached, nil
	}
	p.linter.misses.Add(1)

	defer func() {
		if err != nil {
			p.failed.Store(true)
		}
	}()

	inner, err := p.start()
	if err != nil {
		return nil, err
	}
	sess, err := inner.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close lint session: %w", cerr)
		}
	}()

	if err := sess.ReplaceText(core.Range{}, text); err != nil {
		return nil, err
	}
	diags, err = sess.Lint(ctx)
	if err != nil {
		return nil, err
	}
	p.linter.store.Set(key, diags)
	return diags, nil
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
	return s.process.lint(ctx, s.text)
}

func (s *session) Close() error {
	return nil
}

// LinterState exposes cache statistics for observability.
type LinterState struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
}

// State implements introspection.Introspectable.
func (l *Linter) State() any {
	return LinterState{
		Path:    l.store.Path,
		Entries: l.store.Len(),
		Hits:    l.hits.Load(),
		Misses:  l.misses.Load(),
	}
}

// ComponentType implements introspection.Component.
func (l *Linter) ComponentType() string {
	return "lint-cache"
}

var _ core.Linter = (*Linter)(nil)
var _ introspection.Introspectable = (*Linter)(nil)
var _ introspection.Component = (*Linter)(nil)

package cache_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/errdocs/pkg/adapters/cache"
	"github.com/aretw0/errdocs/pkg/core"
)

// countingLinter reports E0001 for text containing "BAD" and fails on "CRASH".
type countingLinter struct {
	starts atomic.Int32
	lints  atomic.Int32
	closes atomic.Int32
}

func (c *countingLinter) Start(ctx context.Context) (core.LintProcess, error) {
	c.starts.Add(1)
	return countingProcess{c}, nil
}

type countingProcess struct{ c *countingLinter }

func (p countingProcess) NewSession(ctx context.Context) (core.LintSession, error) {
	return &countingSession{c: p.c}, nil
}

func (p countingProcess) Close() error {
	p.c.closes.Add(1)
	return nil
}

type countingSession struct {
	c    *countingLinter
	text string
}

func (s *countingSession) ReplaceText(r core.Range, text string) error {
	s.text = text
	return nil
}

func (s *countingSession) Lint(ctx context.Context) ([]core.Diagnostic, error) {
	s.c.lints.Add(1)
	if strings.Contains(s.text, "CRASH") {
		return nil, errors.New("crashed")
	}
	if strings.Contains(s.text, "BAD") {
		return []core.Diagnostic{{Code: "E0001"}}, nil
	}
	return nil, nil
}

func (s *countingSession) Close() error { return nil }

func runSamples(t *testing.T, l core.Linter, samples ...string) ([][]core.Diagnostic, error) {
	t.Helper()

	ctx := context.Background()
	proc, err := l.Start(ctx)
	require.NoError(t, err)
	defer proc.Close()

	var out [][]core.Diagnostic
	for _, text := range samples {
		sess, err := proc.NewSession(ctx)
		require.NoError(t, err)
		require.NoError(t, sess.ReplaceText(core.Range{}, text))
		diags, err := sess.Lint(ctx)
		require.NoError(t, sess.Close())
		if err != nil {
			return out, err
		}
		out = append(out, diags)
	}
	return out, nil
}

func TestLinter_CachesAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), cache.DefaultFile)
	inner := &countingLinter{}

	// 1. Cold run
	l := cache.Wrap(inner, "engine-v1", cache.NewStore(path), nil)
	got, err := runSamples(t, l, "let BAD;", "let ok;")
	require.NoError(t, err)
	assert.Equal(t, []core.Diagnostic{{Code: "E0001"}}, got[0])
	assert.Empty(t, got[1])
	assert.Equal(t, int32(2), inner.lints.Load())
	assert.Equal(t, int32(1), inner.starts.Load())
	assert.Equal(t, int32(1), inner.closes.Load())

	// 2. Warm run from disk never starts the engine
	l = cache.Wrap(inner, "engine-v1", cache.NewStore(path), nil)
	got, err = runSamples(t, l, "let BAD;", "let ok;")
	require.NoError(t, err)
	assert.Equal(t, []core.Diagnostic{{Code: "E0001"}}, got[0])
	assert.Equal(t, int32(2), inner.lints.Load())
	assert.Equal(t, int32(1), inner.starts.Load())

	state := l.State().(cache.LinterState)
	assert.Equal(t, int64(2), state.Hits)
	assert.Equal(t, int64(0), state.Misses)
	assert.Equal(t, "lint-cache", l.ComponentType())

	// 3. A different identity misses
	l = cache.Wrap(inner, "engine-v2", cache.NewStore(path), nil)
	_, err = runSamples(t, l, "let BAD;")
	require.NoError(t, err)
	assert.Equal(t, int32(3), inner.lints.Load())
}

func TestLinter_PrunesUnusedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), cache.DefaultFile)
	inner := &countingLinter{}

	_, err := runSamples(t, cache.Wrap(inner, "id", cache.NewStore(path), nil), "a", "b", "c")
	require.NoError(t, err)

	store := cache.NewStore(path)
	_, err = runSamples(t, cache.Wrap(inner, "id", store, nil), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLinter_FailureSkipsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), cache.DefaultFile)
	inner := &countingLinter{}

	_, err := runSamples(t, cache.Wrap(inner, "id", cache.NewStore(path), nil), "BAD", "CRASH")
	require.Error(t, err)

	store := cache.NewStore(path)
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len(), "a failed run must not persist partial results")
	assert.Equal(t, int32(1), inner.closes.Load())
}

package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/markdown"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable.
type MockRepository struct {
	docs []core.Document
	err  error
}

func (m *MockRepository) List(ctx context.Context) ([]core.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]core.Document(nil), m.docs...), nil
}

func (m *MockRepository) String() string { return "memory" }

type watchableRepository struct {
	MockRepository
	events chan core.Event
}

func (w *watchableRepository) Watch(ctx context.Context) (<-chan core.Event, error) {
	return w.events, nil
}

func parsed(t *testing.T, path, src string) core.Document {
	t.Helper()
	return core.ParseDocument(path, []byte(src), markdown.NewParser())
}

func newTestService(repo core.Repository, linter core.Linter) *core.Service {
	p := markdown.NewParser()
	return core.NewService(repo, core.NewValidator(linter), core.NewRenderer(p))
}

func TestService_DocumentsSorted(t *testing.T) {
	repo := &MockRepository{docs: []core.Document{
		{FilePath: "b/E0003.md"},
		{FilePath: "a/E0010.md"},
		{FilePath: "z/E0001.md"},
		{FilePath: "a/E0001.md"},
	}}
	service := newTestService(repo, newFakeLinter(nil))

	docs, err := service.Documents(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, d := range docs {
		paths = append(paths, d.FilePath)
	}
	assert.Equal(t, []string{"a/E0001.md", "z/E0001.md", "b/E0003.md", "a/E0010.md"}, paths)
}

func TestService_EmptyCorpus(t *testing.T) {
	service := newTestService(&MockRepository{}, newFakeLinter(nil))

	_, err := service.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
	assert.Equal(t, "found no error documents in memory", err.Error())
}

func TestService_ListError(t *testing.T) {
	boom := errors.New("disk on fire")
	service := newTestService(&MockRepository{err: boom}, newFakeLinter(nil))

	_, err := service.Render(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_Validate(t *testing.T) {
	repo := &MockRepository{docs: []core.Document{
		parsed(t, "docs/E0002.md", "# E0002: two\n\n    BAD2\n"),
		parsed(t, "docs/E0001.md", "# E0009: one\n\n    BAD1\n"),
		parsed(t, "docs/E0003.md", "# E0003: three\n"),
	}}
	linter := newFakeLinter(map[string][]string{"BAD1": {"E0001"}, "BAD2": {"E0002"}})
	service := newTestService(repo, linter)

	err := service.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidationFailed)

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 3)

	assert.Equal(t, "found problems in error documents:\n"+
		"docs/E0001.md: error: file name doesn't match error code in title (E0009)\n"+
		"docs/E0001.md: error: expected only E0009 errors in first code block but found E0001\n"+
		"docs/E0003.md: error: missing code blocks",
		err.Error())

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, 3, state.LastDocuments)
	assert.Equal(t, 3, state.LastProblems)
	assert.NotNil(t, state.LastCheck)
}

func TestService_Build(t *testing.T) {
	repo := &MockRepository{docs: []core.Document{
		parsed(t, "E0002.md", "# E0002: two\n\n    BAD2\n"),
		parsed(t, "E0001.md", "# E0001: one\n\n    BAD1\n"),
	}}
	linter := newFakeLinter(map[string][]string{"BAD1": {"E0001"}, "BAD2": {"E0002"}})
	service := newTestService(repo, linter)

	html, err := service.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		`<h2><a class="self-reference" href="#E0001">E0001: one</a></h2>`+
			"<figure><pre><code>BAD1\n</code></pre></figure>"+
			`<h2><a class="self-reference" href="#E0002">E0002: two</a></h2>`+
			"<figure><pre><code>BAD2\n</code></pre></figure>",
		html)
}

func TestService_BuildRefusesInvalidCorpus(t *testing.T) {
	repo := &MockRepository{docs: []core.Document{parsed(t, "E0001.md", "# E0001: one\n")}}
	service := newTestService(repo, newFakeLinter(nil))

	html, err := service.Build(context.Background())
	assert.ErrorIs(t, err, core.ErrValidationFailed)
	assert.Empty(t, html)

	// Render skips validation.
	html, err = service.Render(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestService_Watch(t *testing.T) {
	service := newTestService(&MockRepository{}, newFakeLinter(nil))
	_, err := service.Watch(context.Background())
	assert.ErrorIs(t, err, core.ErrNotWatchable)

	repo := &watchableRepository{events: make(chan core.Event, 1)}
	repo.events <- core.Event{Type: core.EventModify, Path: "E0001.md"}
	service = newTestService(repo, newFakeLinter(nil))

	ch, err := service.Watch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "E0001.md", (<-ch).Path)
}

func TestService_State(t *testing.T) {
	service := newTestService(&MockRepository{}, newFakeLinter(nil))
	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, 1, state.ValidationJobs)
	assert.Nil(t, state.LastCheck)
	assert.Equal(t, "service", service.ComponentType())
}

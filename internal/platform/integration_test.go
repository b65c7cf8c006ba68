package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/errdocs/internal/platform"
	"github.com/aretw0/errdocs/pkg/adapters/fs"
	"github.com/aretw0/errdocs/pkg/core"
)

// stubLinter reports E0001 for every sample containing "BAD".
type stubLinter struct{}

func (stubLinter) Start(ctx context.Context) (core.LintProcess, error) { return stubLinter{}, nil }
func (stubLinter) NewSession(ctx context.Context) (core.LintSession, error) {
	return &stubSession{}, nil
}
func (stubLinter) Close() error { return nil }

type stubSession struct{ text string }

func (s *stubSession) ReplaceText(r core.Range, text string) error {
	s.text = text
	return nil
}

func (s *stubSession) Lint(ctx context.Context) ([]core.Diagnostic, error) {
	if strings.Contains(s.text, "BAD") {
		return []core.Diagnostic{{Code: "E0001"}}, nil
	}
	return nil, nil
}

func (s *stubSession) Close() error { return nil }

func setupDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNew_BuildsCorpus(t *testing.T) {
	dir := setupDocs(t, map[string]string{
		"E0001.md": "# E0001: bad thing\n\n```js\nBAD\n```\n\nFixed:\n\n    ok\n",
	})

	service, err := platform.New(dir, platform.WithLinter(stubLinter{}), platform.WithJobs(2))
	require.NoError(t, err)

	html, err := service.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		`<h2><a class="self-reference" href="#E0001">E0001: bad thing</a></h2>`+
			"<figure><pre><code>BAD\n</code></pre></figure>"+
			"<p>Fixed:</p>\n"+
			"<figure><pre><code>ok\n</code></pre></figure>",
		html)

	state := service.State().(core.ServiceState)
	assert.Equal(t, "fs-repository", state.RepositoryType)
	assert.Equal(t, 2, state.ValidationJobs)
	assert.IsType(t, fs.RepositoryState{}, state.Repository)
}

func TestNew_ReportsProblems(t *testing.T) {
	dir := setupDocs(t, map[string]string{
		"E0001.md": "# E0002: wrong code\n\n    BAD\n",
	})

	service, err := platform.New(dir, platform.WithLinter(stubLinter{}))
	require.NoError(t, err)

	err = service.Validate(context.Background())
	require.ErrorIs(t, err, core.ErrValidationFailed)
	assert.Contains(t, err.Error(), filepath.Join(dir, "E0001.md")+": error: file name doesn't match error code in title (E0002)")
}

func TestNew_EmptyCorpus(t *testing.T) {
	service, err := platform.New(t.TempDir(), platform.WithLinter(stubLinter{}))
	require.NoError(t, err)

	_, err = service.Check(context.Background())
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := platform.New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNew_WithCache(t *testing.T) {
	dir := setupDocs(t, map[string]string{"E0001.md": "# E0001: x\n\n    BAD\n"})
	cachePath := filepath.Join(t.TempDir(), "lint.cache")

	service, err := platform.New(dir, platform.WithLinter(stubLinter{}), platform.WithCache(cachePath))
	require.NoError(t, err)
	require.NoError(t, service.Validate(context.Background()))

	_, err = os.Stat(cachePath)
	assert.NoError(t, err, "cache file written after a clean run")
}

func TestInit_InjectedRepository(t *testing.T) {
	repo := fs.NewRepository(fs.Config{Path: "unused"})
	got, err := platform.Init("ignored", platform.WithRepository(repo))
	require.NoError(t, err)
	assert.Same(t, repo, got)
}

// Package fs loads error documentation from a directory on disk.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/markdown"
)

// DefaultPattern matches the markdown files directly inside the directory.
const DefaultPattern = "*.md"

// Repository implements core.Repository on top of a directory.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastList      *time.Time
	lastCount     int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	Pattern      string // doublestar glob relative to Path, e.g. "**/*.md"
	Parser       *markdown.Parser
	Logger       *slog.Logger
	Jobs         int           // files parsed concurrently
	Debounce     time.Duration // watch event coalescing window
	EventBuffer  int
	ErrorHandler func(error) // receives watcher errors; logged when nil
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.Parser == nil {
		config.Parser = markdown.NewParser()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Jobs < 1 {
		config.Jobs = 1
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.EventBuffer < 0 {
		config.EventBuffer = 0
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

func (r *Repository) String() string {
	return filepath.Join(r.Path, filepath.FromSlash(r.config.Pattern))
}

// Initialize checks that the directory exists and the pattern is valid.
func (r *Repository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.Path)
	if os.IsNotExist(err) {
		return fmt.Errorf("docs directory does not exist: %s", r.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat docs directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs path is not a directory: %s", r.Path)
	}
	if !doublestar.ValidatePattern(r.config.Pattern) {
		return fmt.Errorf("invalid pattern: %q", r.config.Pattern)
	}
	return nil
}

// List implements core.Repository. Files are read and parsed concurrently;
// the first read error aborts the listing.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	paths, err := r.glob()
	if err != nil {
		return nil, err
	}
	r.config.Logger.Debug("found error documents", "dir", r.Path, "pattern", r.config.Pattern, "count", len(paths))

	docs := make([]core.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := core.ParseFile(path, r.config.Parser)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	r.mu.Lock()
	r.lastList = &now
	r.lastCount = len(docs)
	r.mu.Unlock()

	return docs, nil
}

// glob returns the OS paths of every file matching the pattern.
func (r *Repository) glob() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(r.Path), r.config.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r, err)
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(r.Path, filepath.FromSlash(m))
	}
	return paths, nil
}

// matches reports whether an OS path inside Path is selected by the pattern.
func (r *Repository) matches(path string) bool {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(r.config.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)

package errdocs

import (
	"log/slog"
	"time"

	"github.com/aretw0/errdocs/internal/platform"
	"github.com/aretw0/errdocs/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Document is a parsed error documentation page.
type Document = core.Document

// Problem is a documentation defect found during validation.
type Problem = core.Problem

// ValidationError carries every problem found in a validation run.
type ValidationError = core.ValidationError

// --- Configuration ---

// Option defines a functional option for configuring errdocs.
type Option = platform.Option

// FileConfig is the content of an errdocs.yaml or errdocs.toml file.
type FileConfig = platform.FileConfig

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom document source.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithLinter allows injecting a custom linting engine.
func WithLinter(linter core.Linter) Option {
	return platform.WithLinter(linter)
}

// WithPattern sets the glob selecting documents in the docs directory.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithLinterCommand sets the linter executable and its arguments.
func WithLinterCommand(argv ...string) Option {
	return platform.WithLinterCommand(argv...)
}

// WithLinterFormat sets the output format of the linter command.
func WithLinterFormat(format string) Option {
	return platform.WithLinterFormat(format)
}

// WithTimeout bounds the time spent linting one code sample.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithJobs sets how many files are parsed and validated concurrently.
func WithJobs(n int) Option {
	return platform.WithJobs(n)
}

// WithCache enables the persistent diagnostics cache stored at path.
func WithCache(path string) Option {
	return platform.WithCache(path)
}

// WithoutCache disables the diagnostics cache.
func WithoutCache() Option {
	return platform.WithoutCache()
}

// WithUnsafeHTML controls whether raw HTML reaches the rendered output.
func WithUnsafeHTML(enabled bool) Option {
	return platform.WithUnsafeHTML(enabled)
}

// WithEventBuffer sets the buffer size of the watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithDebounce sets the window in which repeated file changes are coalesced.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithWatcherErrorHandler registers a callback for errors of the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new errdocs Service for the docs directory dir.
func New(dir string, opts ...Option) (*core.Service, error) {
	return platform.New(dir, opts...)
}

// Init opens the document source for dir explicitly.
func Init(dir string, opts ...Option) (core.Repository, error) {
	return platform.Init(dir, opts...)
}

// --- Config files ---

// FindConfig recursively looks upwards for an errdocs config file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// LoadConfig reads a YAML or TOML config file.
func LoadConfig(path string) (*FileConfig, error) {
	return platform.LoadConfig(path)
}

// DefaultCachePath is where the diagnostics cache lives unless configured.
func DefaultCachePath() string {
	return platform.DefaultCachePath()
}

// --- Errors ---

var (
	ErrEmptyCorpus       = core.ErrEmptyCorpus
	ErrValidationFailed  = core.ErrValidationFailed
	ErrLinterUnavailable = core.ErrLinterUnavailable
	ErrNotWatchable      = core.ErrNotWatchable
	ErrConfigNotFound    = platform.ErrConfigNotFound
)

package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/errdocs/pkg/core"
)

// options holds the internal configuration for the errdocs service.
type options struct {
	repository    core.Repository
	linter        core.Linter
	logger        *slog.Logger
	pattern       string
	linterCommand []string
	linterFormat  string
	timeout       time.Duration
	jobs          int
	cache         bool
	cachePath     string
	unsafeHTML    bool
	eventBuffer   int
	debounce      time.Duration
	errorHandler  func(error)
}

// Option defines a functional option for configuring errdocs.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		pattern:    "*.md",
		timeout:    30 * time.Second,
		jobs:       1,
		unsafeHTML: true,
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom document source (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithLinter allows injecting a custom linting engine.
// If provided, the linter command options are ignored.
func WithLinter(linter core.Linter) Option {
	return func(o *options) {
		o.linter = linter
	}
}

// WithPattern sets the doublestar glob selecting documents, relative to the
// docs directory. Defaults to "*.md".
func WithPattern(pattern string) Option {
	return func(o *options) {
		if pattern != "" {
			o.pattern = pattern
		}
	}
}

// WithLinterCommand sets the linter executable and its arguments.
// The code sample is written to its stdin.
func WithLinterCommand(argv ...string) Option {
	return func(o *options) {
		o.linterCommand = argv
	}
}

// WithLinterFormat sets the output format of the linter command
// ("vim-qflist-json" or "gnu-like").
func WithLinterFormat(format string) Option {
	return func(o *options) {
		o.linterFormat = format
	}
}

// WithTimeout bounds the time spent linting one code sample.
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithJobs sets how many files are parsed and validated concurrently.
func WithJobs(n int) Option {
	return func(o *options) {
		o.jobs = n
	}
}

// WithCache enables the persistent diagnostics cache stored at path.
func WithCache(path string) Option {
	return func(o *options) {
		o.cache = true
		o.cachePath = path
	}
}

// WithoutCache disables the diagnostics cache.
func WithoutCache() Option {
	return func(o *options) {
		o.cache = false
	}
}

// WithUnsafeHTML controls whether raw HTML in documents reaches the
// rendered output. Enabled by default.
func WithUnsafeHTML(enabled bool) Option {
	return func(o *options) {
		o.unsafeHTML = enabled
	}
}

// WithEventBuffer sets the buffer size of the watch event channel.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithDebounce sets the window in which repeated changes to a file are
// reported as one event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
// They are logged otherwise.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

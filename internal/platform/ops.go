package platform

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/errdocs/pkg/adapters/cache"
	"github.com/aretw0/errdocs/pkg/adapters/fs"
	"github.com/aretw0/errdocs/pkg/adapters/lintexec"
	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/markdown"
)

// Init opens the document source for dir, as configured by opts.
//
// It returns the configured core.Repository.
func Init(dir string, opts ...Option) (core.Repository, error) {
	o := resolveOptions(opts)
	return initRepository(dir, o, newParser(o))
}

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

func newParser(o *options) *markdown.Parser {
	return markdown.NewParser(markdown.WithUnsafeHTML(o.unsafeHTML))
}

func initRepository(dir string, o *options, parser *markdown.Parser) (core.Repository, error) {
	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Filesystem adapter
	repo := fs.NewRepository(fs.Config{
		Path:         dir,
		Pattern:      o.pattern,
		Parser:       parser,
		Logger:       o.logger,
		Jobs:         o.jobs,
		Debounce:     o.debounce,
		EventBuffer:  o.eventBuffer,
		ErrorHandler: o.errorHandler,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// initLinter builds the linting engine, wrapped in the diagnostics cache
// when enabled.
func initLinter(dir string, o *options) core.Linter {
	var identity string
	linter := o.linter
	if linter == nil {
		cmdLinter := lintexec.New(lintexec.Config{
			Command: o.linterCommand,
			Format:  lintexec.Format(o.linterFormat),
			Dir:     dir,
			Logger:  o.logger,
		})
		identity = cmdLinter.Identity()
		linter = cmdLinter
	}
	if !o.cache {
		return linter
	}

	// Injected linters have no identity; key them by their type.
	if identity == "" {
		identity = typeName(linter)
	}
	path := o.cachePath
	if path == "" {
		path = DefaultCachePath()
	}
	o.logger.Debug("using lint cache", "path", path)
	return cache.Wrap(linter, identity, cache.NewStore(path), o.logger)
}

// DefaultCachePath is the cache file in the user cache directory, or in the
// temporary directory when there is none.
func DefaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "errdocs", cache.DefaultFile)
}

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig is the content of an errdocs.yaml or errdocs.toml file.
// Unset fields keep the defaults.
type FileConfig struct {
	Dir     string       `yaml:"dir" toml:"dir"`
	Pattern string       `yaml:"pattern" toml:"pattern"`
	Jobs    int          `yaml:"jobs" toml:"jobs"`
	Linter  LinterConfig `yaml:"linter" toml:"linter"`
	Cache   CacheConfig  `yaml:"cache" toml:"cache"`
	HTML    HTMLConfig   `yaml:"html" toml:"html"`

	// path of the file the config was loaded from
	path string
}

// LinterConfig configures the linter command.
type LinterConfig struct {
	Command []string `yaml:"command" toml:"command"`
	Format  string   `yaml:"format" toml:"format"`
	Timeout string   `yaml:"timeout" toml:"timeout"` // e.g. "10s"
}

// CacheConfig configures the diagnostics cache.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// HTMLConfig configures rendering.
type HTMLConfig struct {
	Unsafe *bool `yaml:"unsafe" toml:"unsafe"`
}

// LoadConfig reads a YAML or TOML config file, chosen by extension.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &FileConfig{path: path}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if cfg.Linter.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Linter.Timeout); err != nil {
			return nil, fmt.Errorf("invalid linter.timeout in %s: %w", path, err)
		}
	}
	return cfg, nil
}

// DocsDir returns the docs directory, resolved against the config file's
// directory when relative. It is empty when the config does not set one.
func (c *FileConfig) DocsDir() string {
	if c.Dir == "" || filepath.IsAbs(c.Dir) {
		return c.Dir
	}
	return filepath.Join(filepath.Dir(c.path), c.Dir)
}

// Options converts the config into service options. Setting a cache path
// enables the cache. Relative cache paths are resolved against the config
// file's directory.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.Pattern != "" {
		opts = append(opts, WithPattern(c.Pattern))
	}
	if c.Jobs > 0 {
		opts = append(opts, WithJobs(c.Jobs))
	}
	if len(c.Linter.Command) > 0 {
		opts = append(opts, WithLinterCommand(c.Linter.Command...))
	}
	if c.Linter.Format != "" {
		opts = append(opts, WithLinterFormat(c.Linter.Format))
	}
	if d, err := time.ParseDuration(c.Linter.Timeout); err == nil {
		opts = append(opts, WithTimeout(d))
	}
	switch {
	case c.Cache.Enabled != nil && !*c.Cache.Enabled:
		opts = append(opts, WithoutCache())
	case c.Cache.Enabled != nil || c.Cache.Path != "":
		path := c.Cache.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(c.path), path)
		}
		opts = append(opts, WithCache(path))
	}
	if c.HTML.Unsafe != nil {
		opts = append(opts, WithUnsafeHTML(*c.HTML.Unsafe))
	}
	return opts
}

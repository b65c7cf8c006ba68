package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/errdocs"
	"github.com/aretw0/errdocs/pkg/core"
)

var (
	verbose      bool
	configPath   string
	pattern      string
	linterCmd    string
	linterFormat string
	timeout      time.Duration
	jobs         int
	noCache      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "errdocs",
	Short: "Validate error documentation against a linter",
	Long: `errdocs checks a directory of error documentation pages (E0001.md, ...).
Each page must be titled with its own error code, and its first code block
must make the linter report exactly that error while later blocks lint clean.
The pages can then be rendered to a single HTML fragment.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command. Cobra has already printed the error when
// one is returned.
func Execute() error {
	return rootCmd.Execute()
}

// fatal reports err and exits with status 1, the same status used for
// validation problems.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: errdocs.yaml/.yml/.toml found upwards)")
	flags.StringVar(&pattern, "pattern", "", "Glob selecting documents in the docs directory (default \"*.md\")")
	flags.StringVar(&linterCmd, "linter", "", "Linter command reading a sample on stdin (default \"quick-lint-js --stdin --output-format=vim-qflist-json\")")
	flags.StringVar(&linterFormat, "linter-format", "", "Linter output format: vim-qflist-json or gnu-like")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Time limit for linting one code sample (0 disables)")
	flags.IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Files parsed and validated concurrently")
	flags.BoolVar(&noCache, "no-cache", false, "Do not use the diagnostics cache")
}

// openService resolves the docs directory and options from the optional
// [dir] argument, the config file and the flags, in increasing precedence.
func openService(cmd *cobra.Command, args []string) (*core.Service, error) {
	dir, opts, err := resolveOptions(cmd, args)
	if err != nil {
		return nil, err
	}
	slog.Debug("opening docs directory", "dir", dir)
	return errdocs.New(dir, opts...)
}

func resolveOptions(cmd *cobra.Command, args []string) (string, []errdocs.Option, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}

	// 1. Config file
	cfg, err := loadConfig(start)
	if err != nil {
		return "", nil, err
	}

	dir := start
	if len(args) == 0 && cfg != nil && cfg.DocsDir() != "" {
		dir = cfg.DocsDir()
	}

	// 2. Defaults, then config, then explicit flags
	opts := []errdocs.Option{
		errdocs.WithLogger(slog.Default()),
		errdocs.WithJobs(jobs),
		errdocs.WithTimeout(timeout),
		errdocs.WithCache(errdocs.DefaultCachePath()),
	}
	if cfg != nil {
		opts = append(opts, cfg.Options()...)
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		opts = append(opts, errdocs.WithPattern(pattern))
	}
	if flags.Changed("linter") {
		argv := strings.Fields(linterCmd)
		if len(argv) == 0 {
			return "", nil, errors.New("--linter must not be empty")
		}
		opts = append(opts, errdocs.WithLinterCommand(argv...))
	}
	if flags.Changed("linter-format") {
		opts = append(opts, errdocs.WithLinterFormat(linterFormat))
	}
	if flags.Changed("timeout") {
		opts = append(opts, errdocs.WithTimeout(timeout))
	}
	if flags.Changed("jobs") {
		opts = append(opts, errdocs.WithJobs(jobs))
	}
	if noCache {
		opts = append(opts, errdocs.WithoutCache())
	}
	return dir, opts, nil
}

func loadConfig(start string) (*errdocs.FileConfig, error) {
	path := configPath
	if path == "" {
		found, err := errdocs.FindConfig(start)
		if errors.Is(err, errdocs.ErrConfigNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	slog.Debug("loading config", "path", path)
	return errdocs.LoadConfig(path)
}

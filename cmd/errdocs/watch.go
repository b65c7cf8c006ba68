package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/report"
)

// settle is how long the watcher waits for a burst of changes to end before
// checking again.
const settle = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Validate the error documentation on every change",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(cmd, args)
		if err != nil {
			fatal("Error initializing errdocs", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		runCheck(ctx, service)
		slog.Info("watching for changes, press Ctrl+C to stop")

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				slog.Debug("change detected", "event", e.String())
				if !drain(ctx, events) {
					return
				}
				runCheck(ctx, service)
			}
		}
	},
}

// drain swallows the events that arrive until the directory settles.
// It reports false when the watch is over.
func drain(ctx context.Context, events <-chan core.Event) bool {
	timer := time.NewTimer(settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-events:
			if !ok {
				return false
			}
			timer.Reset(settle)
		case <-timer.C:
			return true
		}
	}
}

func runCheck(ctx context.Context, service *core.Service) {
	problems, err := service.Check(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		slog.Error("check failed", "error", err)
	case len(problems) == 0:
		slog.Info("all documents are valid")
	default:
		_ = report.WriteText(os.Stdout, problems, !color.NoColor)
		slog.Warn("found problems in error documents", "count", len(problems))
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

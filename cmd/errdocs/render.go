package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/aretw0/errdocs/pkg/core"
	"github.com/aretw0/errdocs/pkg/report"
)

var (
	renderOutput  string
	renderNoCheck bool
)

var renderCmd = &cobra.Command{
	Use:   "render [dir]",
	Short: "Render the error documentation to HTML",
	Long: `Validate the docs directory and render every document to a single HTML
fragment, sorted by error code. Nothing is written when validation fails.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(cmd, args)
		if err != nil {
			fatal("Error initializing errdocs", err)
		}

		ctx := context.Background()
		var html string
		if renderNoCheck {
			html, err = service.Render(ctx)
		} else {
			html, err = service.Build(ctx)
		}

		var verr *core.ValidationError
		if errors.As(err, &verr) {
			_ = report.WriteText(os.Stderr, verr.Problems, !color.NoColor)
			fatal("Error rendering documents", core.ErrValidationFailed)
		}
		if err != nil {
			fatal("Error rendering documents", err)
		}

		if renderOutput == "" || renderOutput == "-" {
			fmt.Print(html)
			return
		}
		if err := atomic.WriteFile(renderOutput, strings.NewReader(html)); err != nil {
			fatal("Error writing output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write HTML to this file instead of stdout")
	renderCmd.Flags().BoolVar(&renderNoCheck, "no-check", false, "Render without validating")
}

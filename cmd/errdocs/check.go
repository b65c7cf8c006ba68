package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/errdocs"
	"github.com/aretw0/errdocs/pkg/report"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate the error documentation",
	Long: `Validate every document of the docs directory and report problems.
Exits with status 1 when any problem is found.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(cmd, args)
		if err != nil {
			fatal("Error initializing errdocs", err)
		}

		problems, err := service.Check(context.Background())
		if err != nil {
			fatal("Error checking documents", err)
		}

		if len(problems) == 0 && report.Format(checkFormat) == report.FormatText {
			return
		}
		opts := report.Options{Color: !color.NoColor, ToolVersion: strings.TrimSpace(errdocs.Version)}
		if err := report.Write(os.Stdout, report.Format(checkFormat), problems, opts); err != nil {
			fatal("Error writing report", err)
		}
		if len(problems) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", string(report.FormatText),
		fmt.Sprintf("Output format: %v", report.Formats))
}

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var stateCheck bool

var stateCmd = &cobra.Command{
	Use:   "state [dir]",
	Short: "Print the internal state of the service as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(cmd, args)
		if err != nil {
			fatal("Error initializing errdocs", err)
		}

		if stateCheck {
			// Problems only feed the counters here.
			if _, err := service.Check(context.Background()); err != nil {
				fatal("Error checking documents", err)
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(service.State()); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().BoolVar(&stateCheck, "check", false, "Run a check first to fill in the counters")
}

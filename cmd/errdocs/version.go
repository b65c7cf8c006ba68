package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/errdocs"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of errdocs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("errdocs version %s\n", strings.TrimSpace(errdocs.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

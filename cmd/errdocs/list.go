package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

// listEntry is the JSON shape of a listed document.
type listEntry struct {
	Path        string `json:"path"`
	Code        string `json:"code"`
	Description string `json:"description"`
	CodeBlocks  int    `json:"code_blocks"`
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the documents of the docs directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService(cmd, args)
		if err != nil {
			fatal("Error initializing errdocs", err)
		}

		docs, err := service.Documents(context.Background())
		if err != nil {
			fatal("Error listing documents", err)
		}

		entries := make([]listEntry, len(docs))
		for i, d := range docs {
			entries[i] = listEntry{
				Path:        d.FilePath,
				Code:        d.TitleErrorCode,
				Description: d.TitleErrorDescription,
				CodeBlocks:  len(d.CodeBlocks),
			}
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, e := range entries {
			code := e.Code
			if code == "" {
				code = "(untitled)"
			}
			fmt.Printf("%s\t%s - %s (%d code blocks)\n", e.Path, code, e.Description, e.CodeBlocks)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}

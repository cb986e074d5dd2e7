package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:     "options",
	Short:   "Show the distinct values available for each filter",
	GroupID: "sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := salesClient.FilterOptions(context.Background())
		if err != nil {
			return fmt.Errorf("fetching filter options: %w", err)
		}
		if jsonOutput {
			return printJSON(opts)
		}
		writeOptions(os.Stdout, opts)
		return nil
	},
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/client"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

var (
	httpURL    string
	jsonOutput bool
	noColor    bool

	salesClient client.SalesClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("SALES_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:5000"
}

// noClient replaces the root PersistentPreRunE for commands that work on the
// database directly.
func noClient(cmd *cobra.Command, args []string) error {
	applyColor()
	return nil
}

func applyColor() {
	if noColor || !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
}

var rootCmd = &cobra.Command{
	Use:          "salesd <command>",
	Short:        "Retail sales browser: API server, importer and CLI",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyColor()
		salesClient = client.NewHTTPClient(httpURL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if salesClient != nil {
			salesClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "sales API base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "sales", Title: "Sales:"},
		&cobra.Group{ID: "data", Title: "Data:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Sales
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(optionsCmd)

	// Data
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(eventsCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

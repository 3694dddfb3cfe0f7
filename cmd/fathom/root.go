package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
}

var rootCmd = &cobra.Command{
	Use:   "fathom",
	Short: "LLM-driven research runs with two-tier QA gating",
	Long: "Fathom runs an automated research workflow: it generates candidate\n" +
		"sources via an LLM, fetches and cleans their content, filters them for\n" +
		"relevance, synthesizes a findings report, and scores its reasoning\n" +
		"quality before persisting both a JSON record and a markdown report.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.Version = version
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fathom/internal/format"
	"fathom/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List generation providers and their configuration status",
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, _ []string) error {
	t := format.NewTable(format.ASCII)
	t.Header("Name", "Provider", "Status")
	for _, info := range llm.Available(providerKeys()) {
		t.Row(info.Name, info.DisplayName, info.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

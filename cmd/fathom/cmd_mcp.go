package main

import (
	"github.com/spf13/cobra"

	"fathom/internal/logging"
	"fathom/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the research tools over MCP on stdio",
	Long: "Starts an MCP server on stdin/stdout exposing the research and\n" +
		"read_report tools, so agent hosts can drive research runs directly.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	logger := logging.New("mcp")
	logger.Info("starting fathom MCP server over stdio")
	srv := mcpserver.New(pipeline, version, mcpserver.WithLogger(logger))
	return srv.Run(cmd.Context())
}

// fathom is the research workflow CLI: run single or batched research
// queries, list generation providers, or serve the pipeline over HTTP
// or MCP.
//
// Usage:
//
//	fathom research "What are the latest trends in grid-scale storage?"
//	fathom batch -f queries.txt --parallel 3
//	fathom providers
//	fathom serve --addr :8080
//	fathom mcp
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

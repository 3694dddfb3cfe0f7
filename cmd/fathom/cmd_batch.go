package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fathom/internal/research"
)

var batchFlags struct {
	file     string
	parallel int
}

var batchCmd = &cobra.Command{
	Use:   "batch [query ...]",
	Short: "Run multiple research queries, optionally in parallel",
	Long: "Runs one full research workflow per query. Queries come from\n" +
		"arguments or from a file (one query per line, blank lines and\n" +
		"#-comments skipped). Each query gets its own pipeline run; runs\n" +
		"share nothing beyond the output directory.",
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.file, "file", "f", "", "File with one query per line")
	f.IntVar(&batchFlags.parallel, "parallel", 1, "Number of queries to run concurrently")
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries := append([]string(nil), args...)
	if batchFlags.file != "" {
		fromFile, err := readQueries(batchFlags.file)
		if err != nil {
			return err
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries: pass them as arguments or via --file")
	}
	if batchFlags.parallel < 1 {
		batchFlags.parallel = 1
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.parallel)

	failures := 0
	for _, query := range queries {
		g.Go(func() error {
			// One pipeline per query: runs are fully independent.
			pipeline, err := buildPipeline(ctx, cfg)
			if err != nil {
				return err
			}
			st := pipeline.Run(ctx, query)

			mu.Lock()
			defer mu.Unlock()
			if st.Status == research.StatusComplete {
				fmt.Fprintf(out, "[%s] %s -> %s\n", st.Status, query, st.OutputPath)
			} else {
				failures++
				fmt.Fprintf(out, "[%s] %s: %s\n", st.Status, query, st.ErrorMessage)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d queries did not complete", failures, len(queries))
	}
	fmt.Fprintf(out, "%d queries complete\n", len(queries))
	return nil
}

func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return queries, nil
}

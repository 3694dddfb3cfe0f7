package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fathom/internal/format"
	"fathom/internal/research"
)

var researchFlags struct {
	markdown bool
}

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Run one research query end to end",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResearch,
}

func init() {
	researchCmd.Flags().BoolVar(&researchFlags.markdown, "markdown", false, "Render the QA table as Markdown")
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	st := pipeline.Run(cmd.Context(), query)

	out := cmd.OutOrStdout()
	mode := format.ASCII
	if researchFlags.markdown {
		mode = format.Markdown
	}

	printStatus(out, st)
	if len(st.Sources) > 0 || len(st.RejectedSources) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, format.SourceTable(mode, st.Sources, st.RejectedSources))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Findings)

	if st.OutputPath != "" {
		fmt.Fprintf(out, "\nOutput: %s\n", st.OutputPath)
	}
	if st.Status != research.StatusComplete {
		return fmt.Errorf("run finished with status %s: %s", st.Status, st.ErrorMessage)
	}
	return nil
}

// printStatus summarizes the run outcome with the QA verdicts.
func printStatus(out io.Writer, st *research.State) {
	okc := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	if st.Status == research.StatusComplete {
		fmt.Fprintf(out, "%s query: %s\n", okc("[complete]"), st.Query)
	} else {
		fmt.Fprintf(out, "%s query: %s (%s)\n", fail("["+string(st.Status)+"]"), st.Query, st.ErrorMessage)
	}

	fmt.Fprintf(out, "sources: %d accepted, %d rejected\n", len(st.Sources), len(st.RejectedSources))

	if st.FindingsQA.IsValid {
		fmt.Fprintf(out, "findings QA: %s (score %.2f)\n", okc("passed"), st.FindingsQA.QualityScore)
	} else {
		fmt.Fprintf(out, "findings QA: %s (score %.2f): %s\n",
			warn("concerns"), st.FindingsQA.QualityScore, strings.Join(st.FindingsQA.Issues, "; "))
	}
}

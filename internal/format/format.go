// Package format renders run results as terminal or markdown tables.
package format

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"fathom/internal/source"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Table is the project-owned table abstraction.
type Table interface {
	// Header sets the column headers.
	Header(cols ...string)
	// Row appends a data row.
	Row(vals ...any)
	// String renders the table in the configured Mode.
	String() string
}

// NewTable returns a Table that renders in the given Mode.
func NewTable(m Mode) Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &prettyAdapter{writer: w, mode: m}
}

// prettyAdapter wraps go-pretty/v6/table.Writer behind the Table interface.
type prettyAdapter struct {
	writer table.Writer
	mode   Mode
}

func (a *prettyAdapter) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	a.writer.AppendHeader(row)
}

func (a *prettyAdapter) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendRow(row)
}

func (a *prettyAdapter) String() string {
	if a.mode == Markdown {
		return a.writer.RenderMarkdown()
	}
	return a.writer.Render()
}

// SourceTable renders the QA partition of a run's sources: accepted rows
// show the relevance score, rejected rows the rejection reason. Titles
// wrap at 40 columns so long LLM-generated titles stay readable.
func SourceTable(m Mode, accepted, rejected []source.Source) string {
	t := table.NewWriter()
	if m == ASCII {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"#", "Verdict", "Title", "Score", "Notes"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: 40},
		{Number: 5, WidthMax: 50},
	})

	n := 0
	for _, src := range accepted {
		n++
		t.AppendRow(table.Row{n, "PASS", src.Title, fmt.Sprintf("%.2f", src.RelevanceScore), src.URL})
	}
	for _, src := range rejected {
		n++
		t.AppendRow(table.Row{n, "FAIL", src.Title, "-", src.RejectionReason})
	}

	if m == Markdown {
		return t.RenderMarkdown()
	}
	return t.Render()
}

// Package render provides the table and JSON output modes for aggregate
// results, adapted from the teacher's pkg/output/formatter.go (summaryTable,
// toJSON) to dskusage's RootResult shape.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/otuschhoff/dskusage/internal/aggregate"
	"github.com/otuschhoff/dskusage/internal/format"
)

// Table renders results as a styled table, one row per root plus a total
// row, the same way the teacher's summaryTable renders a fixed metric
// table via go-pretty's table.Writer and StyleColoredDark.
func Table(f *format.Formatter, results []aggregate.RootResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Path", "Size", "Errors"})

	var total int64
	for _, r := range results {
		t.AppendRow(table.Row{r.Path, f.Format(r.Bytes), r.NumErrors})
		total += r.Bytes
	}
	if len(results) > 1 {
		t.AppendFooter(table.Row{"total", f.Format(total), ""})
	}

	t.SetStyle(table.StyleColoredDark)
	// Keep the footer's "total" label as written; the style upper-cases
	// footers by default.
	t.Style().Format.Footer = text.FormatDefault
	return fmt.Sprintf("%s\n", t.Render())
}

// jsonRoot is the wire shape for one root in --output-format json, keeping
// field names stable independent of aggregate.RootResult's internal layout.
type jsonRoot struct {
	Path      string `json:"path"`
	IsFile    bool   `json:"is_file"`
	Bytes     int64  `json:"bytes"`
	NumErrors int64  `json:"num_errors"`
}

type jsonOutput struct {
	Roots      []jsonRoot `json:"roots"`
	TotalBytes int64      `json:"total_bytes"`
}

// JSON renders results plus their total as a JSON document.
func JSON(results []aggregate.RootResult) (string, error) {
	out := jsonOutput{Roots: make([]jsonRoot, len(results))}
	for i, r := range results {
		out.Roots[i] = jsonRoot{Path: r.Path, IsFile: r.IsFile, Bytes: r.Bytes, NumErrors: r.NumErrors}
		out.TotalBytes += r.Bytes
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

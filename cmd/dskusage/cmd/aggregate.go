package cmd

import (
	"fmt"
	"os"

	"github.com/otuschhoff/dskusage/internal/aggregate"
	"github.com/otuschhoff/dskusage/internal/render"
	"github.com/otuschhoff/dskusage/internal/walkengine"
	"github.com/spf13/cobra"
)

var (
	noTotal      bool
	noSort       bool
	statistics   bool
	outputFormat string
)

// aggregateCmd runs the non-interactive walk-and-sum mode (spec.md §4.4).
// It is also what the root command runs when invoked with no subcommand.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [paths...]",
	Short: "Sum disk usage per root path and print one line per root",
	Long: `aggregate walks each given path, sums the bytes it contains, and prints
one line per root. With more than one root it also prints a trailing total
unless --no-total is given.`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().BoolVar(&noTotal, "no-total", false,
		"Don't print a trailing total line when given more than one root")
	aggregateCmd.Flags().BoolVar(&noSort, "no-sort", false,
		"Print roots in the order given instead of sorted by size")
	aggregateCmd.Flags().BoolVar(&statistics, "statistics", false,
		"Print entry count and smallest/largest file size after the roots")
	aggregateCmd.Flags().StringVar(&outputFormat, "output-format", "plain",
		"Output format: plain, table, json")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	roots, err := rootsOrCwd(args)
	if err != nil {
		return err
	}

	formatter, err := resolveFormatter()
	if err != nil {
		return err
	}

	switch outputFormat {
	case "table", "json", "plain":
	default:
		return fmt.Errorf("unknown output format %q: want plain, table, or json", outputFormat)
	}

	apparent, hardlinks := sizingOptions()
	agg := aggregate.New(aggregate.Options{
		Threads:        walkThreads(),
		Sorting:        walkengine.SortNone,
		ApparentSize:   apparent,
		CountHardLinks: hardlinks,
		Sort:           !noSort,
		ComputeTotal:   !noTotal,
		Statistics:     statistics,
		Formatter:      formatter,
	})

	results := agg.Run(roots)

	var totalErrors int64
	for _, r := range results {
		totalErrors += r.NumErrors
	}

	switch outputFormat {
	case "table":
		fmt.Print(render.Table(formatter, results))
	case "json":
		out, err := render.JSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "plain":
		for _, r := range results {
			fmt.Println(aggregate.FormatLine(formatter, r))
		}
		if !noTotal && len(results) > 1 {
			fmt.Println(aggregate.FormatTotal(formatter, results))
		}
	}

	if statistics {
		st := agg.Statistics()
		fmt.Fprintf(os.Stderr, "\nentries traversed: %d\nsmallest file: %s\nlargest file: %s\n",
			st.EntriesTraversed, formatter.Format(st.SmallestFileBytes), formatter.Format(st.LargestFileBytes))
	}

	if totalErrors > 0 {
		os.Exit(1)
	}
	return nil
}

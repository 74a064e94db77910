// Package cmd provides the Cobra CLI command structure for dskusage.
//
// This package defines the root command, the aggregate subcommand, and the
// interactive subcommand, along with the global flags shared by all three.
package cmd

import (
	"os"
	"sort"

	"github.com/otuschhoff/dskusage/internal/format"
	"github.com/spf13/cobra"
)

var (
	threads        int
	formatName     string
	apparentSize   bool
	countHardLinks bool
)

// rootCmd represents the base command when called without any subcommand.
// With no subcommand given it behaves like "aggregate": it walks the given
// paths (or the current directory's immediate entries if none are given)
// and prints one line per root plus a total.
var rootCmd = &cobra.Command{
	Use:   "dskusage [paths...]",
	Short: "Disk usage analyzer with an interactive tree explorer",
	Long: `dskusage walks one or more directories in parallel and reports how much
disk space each consumes.

Examples:
  dskusage /home/user
  dskusage aggregate --statistics /var/log
  dskusage interactive /home/user`,
	RunE: runAggregate,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&threads, "threads", "t", 0,
		"Number of walker threads (default: number of CPUs)")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "metric",
		"Byte format: metric, binary, bytes, gb, gib, mb, mib")
	rootCmd.PersistentFlags().BoolVarP(&apparentSize, "apparent-size", "A", false,
		"Use apparent (logical) size instead of size on disk")
	rootCmd.PersistentFlags().BoolVarP(&countHardLinks, "count-hard-links", "l", false,
		"Count every hard link independently instead of de-duplicating by inode")

	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(interactiveCmd)
}

// SetupError marks a failure returned by a command: a bad flag value, an
// unparseable argument, a missing terminal, or a terminal that can't be
// put in raw mode. main uses it to tell these apart from a walk that ran
// to completion but tallied I/O errors along the way (spec.md §6.2), which
// is reported by exiting 1 directly rather than by returning an error.
type SetupError struct {
	err error
}

func setupError(err error) error {
	if err == nil {
		return nil
	}
	return &SetupError{err: err}
}

func (e *SetupError) Error() string { return e.err.Error() }
func (e *SetupError) Unwrap() error { return e.err }

// Execute runs the root command. Every error it returns comes back wrapped
// in SetupError. A bad flag, an argument Cobra itself rejected, or a
// missing terminal is detected before any root is walked; in interactive
// mode a failed alt-screen or raw-mode switch comes after the tree has
// been walked.
func Execute() error {
	return setupError(rootCmd.Execute())
}

// resolveFormatter parses the --format flag into a format.Formatter,
// returning a non-nil error on an unknown value.
func resolveFormatter() (*format.Formatter, error) {
	mode, err := format.ParseMode(formatName)
	if err != nil {
		return nil, err
	}
	return format.New(mode), nil
}

// rootsOrCwd returns args unchanged, or the sorted immediate entries of the
// current directory if args is empty, matching dua-cli's cwd_dirlist
// fallback (main.rs) for "no paths given".
func rootsOrCwd(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	f, err := os.Open(".")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func walkThreads() int {
	if threads <= 0 {
		return 0
	}
	return threads
}

func sizingOptions() (apparent, hardlinks bool) {
	return apparentSize, countHardLinks
}

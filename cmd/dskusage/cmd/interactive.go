package cmd

import (
	"fmt"
	"os"

	"github.com/otuschhoff/dskusage/internal/mark"
	"github.com/otuschhoff/dskusage/internal/nav"
	"github.com/otuschhoff/dskusage/internal/sizing"
	"github.com/otuschhoff/dskusage/internal/tree"
	"github.com/otuschhoff/dskusage/internal/tui"
	"github.com/otuschhoff/dskusage/internal/walkengine"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// interactiveCmd drops into the terminal tree explorer (spec.md §4.6-4.9).
// Its "i" alias matches dua-cli's own interactive-mode shorthand.
var interactiveCmd = &cobra.Command{
	Use:     "interactive [paths...]",
	Aliases: []string{"i"},
	Short:   "Browse disk usage interactively and mark entries for deletion",
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	roots, err := rootsOrCwd(args)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a connected terminal")
	}

	formatter, err := resolveFormatter()
	if err != nil {
		return err
	}

	apparent, hardlinks := sizingOptions()
	engine := walkengine.New(walkengine.Options{Threads: walkThreads(), Sorting: walkengine.SortNone})
	resolver := sizing.NewResolver(sizing.Options{ApparentSize: apparent, CountHardLinks: hardlinks}, sizing.NewInodeFilter())
	t := tree.BuildRoots(roots, engine, resolver)

	n := nav.New(t)
	m := mark.NewSet()

	terminal := tui.NewTerm(int(os.Stdin.Fd()), os.Stdin, os.Stdout)
	loop := tui.NewEventLoop(terminal, t, n, m, formatter)
	return loop.Run()
}

// Package main provides the entry point for the dskusage CLI tool.
//
// dskusage walks one or more directories in parallel, aggregates apparent
// or on-disk byte usage per root, and optionally drops into an interactive
// terminal explorer for browsing and deleting large subtrees.
//
// Usage:
//
//	dskusage [paths...]
//	dskusage aggregate [--no-total] [--no-sort] [--statistics] [paths...]
//	dskusage interactive [paths...]
package main

import (
	"errors"
	"log"
	"os"

	"github.com/otuschhoff/dskusage/cmd/dskusage/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	log.Print(err)

	// Argument and setup failures (spec.md §6.2) are distinct from a walk
	// that ran to completion but tallied I/O errors, which exits 1 on its
	// own via os.Exit before Execute ever returns.
	var setupErr *cmd.SetupError
	if errors.As(err, &setupErr) {
		os.Exit(2)
	}
	os.Exit(1)
}

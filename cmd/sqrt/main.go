package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	// Entry point: create a root context and run the application.
	// context.Background() is the top-level context for the process; run
	// derives a signal-aware child from it so an interrupt during an
	// interactive prompt terminates the run cleanly.
	ctx := context.Background()

	// Pass in the command line arguments and the standard streams. This
	// keeps run testable in isolation: tests substitute in-memory readers
	// and writers instead of the process streams.
	if err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.CountDocuments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}
	chunks, err := deps.Chunks.CountChunks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Documents: %d\n", docs)
	fmt.Fprintf(deps.Stdout, "Chunks:    %d\n", chunks)
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/bloom"
	"github.com/fwojciec/locqa/fs"
	"github.com/fwojciec/locqa/goquery"
	"github.com/fwojciec/locqa/htmltomarkdown"
	"github.com/fwojciec/locqa/ingest"
	"github.com/fwojciec/locqa/trafilatura"
	"golang.org/x/time/rate"
)

// expectedChunks sizes the Bloom filter for deduplication.
const expectedChunks = 100000

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	ing := &ingest.Ingester{
		Files:       fs.NewRepo(c.Dir),
		Extractor:   trafilatura.NewExtractor(),
		Fallback:    goquery.NewExtractor(),
		Converter:   htmltomarkdown.NewConverter(),
		Embedder:    deps.Embedder,
		Documents:   deps.Documents,
		Chunks:      deps.Chunks,
		Filter:      bloom.NewFilter(expectedChunks, 0.01),
		Limiter:     rate.NewLimiter(rate.Limit(c.EmbedRPS), 1),
		Concurrency: c.Concurrency,
		LinkMode:    goquery.LinkMode(c.LinkMode),
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d HTML files\n", event.Total)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", ingest.TruncatePath(event.Path, 60), event.Error)
		case ingest.ProgressFinished:
			// Summary printed after ingestion completes
		}
	}

	result, err := ing.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d documents, %d chunks (%s), %d duplicates skipped\n",
		result.Documents, result.Chunks, ingest.FormatBytes(result.Bytes), result.Duplicates)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d files failed\n", result.Failed)
	}
	return nil
}

// Package ingest provides knowledge base ingestion orchestration.
// It coordinates extraction, link rewriting, markdown conversion,
// chunking, deduplication, embedding, and storage of local HTML
// documentation dumps.
package ingest

import (
	"context"
	"path"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/bloom"
	"github.com/fwojciec/locqa/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// indexFileName is the dump's table of contents. It feeds the title map
// for internal link rewriting and is not ingested as a document.
const indexFileName = "index.html"

// Ingester orchestrates ingestion of an HTML dump into the knowledge base.
type Ingester struct {
	Files     locqa.CodeRepository
	Extractor locqa.Extractor
	Fallback  locqa.Extractor
	Converter locqa.Converter
	Embedder  locqa.Embedder
	Documents locqa.DocumentService
	Chunks    locqa.ChunkService
	Filter    *bloom.Filter
	Limiter   *rate.Limiter

	Concurrency int
	LinkMode    goquery.LinkMode
	MaxChars    int
	Overlap     int
}

// Result holds the outcome of an ingestion run.
type Result struct {
	Documents  int
	Chunks     int
	Duplicates int
	Failed     int
	Bytes      int
}

// ProgressEvent reports progress during an ingestion run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single HTML file.
type fileResult struct {
	position int
	path     string
	title    string
	markdown string
	err      error
}

// Run ingests every HTML file in the source tree and saves documents
// and embedded chunks. The progress callback, if provided, receives
// events as extraction proceeds.
func (ing *Ingester) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	paths, err := ing.Files.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	var htmlPaths []string
	for _, p := range paths {
		ext := strings.ToLower(path.Ext(p))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		if path.Base(p) == indexFileName {
			continue
		}
		htmlPaths = append(htmlPaths, p)
	}

	titleMap := ing.loadTitleMap(ctx)

	total := len(htmlPaths)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := ing.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan fileResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, p := range htmlPaths {
			i, p := i, p
			g.Go(func() error {
				resultCh <- ing.processFile(gctx, i, p, titleMap)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]fileResult, total)
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Path:      result.path,
					Error:     result.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Path:      result.path,
			})
		}
	}

	// Store and embed sequentially; the embedding backend is the
	// bottleneck and the rate limiter serializes it anyway.
	res := &Result{Failed: failedCount}
	for _, result := range results {
		if result.err != nil {
			continue
		}
		if err := ing.storeDocument(ctx, result, res); err != nil {
			return res, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, nil
}

// loadTitleMap builds the internal link title map from the index page.
// A missing or unreadable index page yields an empty map.
func (ing *Ingester) loadTitleMap(ctx context.Context) map[string]string {
	indexHTML, err := ing.Files.ReadFile(ctx, indexFileName)
	if err != nil {
		return map[string]string{}
	}
	return goquery.LoadTitleMap(indexHTML)
}

// processFile extracts and converts a single HTML file.
func (ing *Ingester) processFile(ctx context.Context, position int, filePath string, titleMap map[string]string) fileResult {
	result := fileResult{position: position, path: filePath}

	rawHTML, err := ing.Files.ReadFile(ctx, filePath)
	if err != nil {
		result.err = err
		return result
	}

	extracted, err := ing.Extractor.Extract(rawHTML)
	if err != nil || extracted.ContentHTML == "" {
		if ing.Fallback == nil {
			if err == nil {
				err = locqa.Errorf(locqa.EINVALID, "no content extracted from %q", filePath)
			}
			result.err = err
			return result
		}
		extracted, err = ing.Fallback.Extract(rawHTML)
		if err != nil {
			result.err = err
			return result
		}
	}

	contentHTML := extracted.ContentHTML
	if ing.LinkMode != "" {
		rewritten, err := goquery.RewriteLinks(contentHTML, titleMap, ing.LinkMode)
		if err == nil && rewritten != "" {
			contentHTML = rewritten
		}
	}

	markdown, err := ing.Converter.Convert(contentHTML)
	if err != nil {
		result.err = err
		return result
	}

	title := extracted.Title
	if title == "" {
		title = titleMap[path.Base(filePath)]
	}
	if title == "" {
		title = locqa.GuessTitle(markdown)
	}

	result.title = title
	result.markdown = markdown
	return result
}

// storeDocument saves one document with its deduplicated, embedded chunks.
func (ing *Ingester) storeDocument(ctx context.Context, result fileResult, res *Result) error {
	doc := &locqa.Document{
		FilePath:    result.path,
		Title:       result.title,
		Content:     result.markdown,
		ContentHash: computeHash(result.markdown),
	}
	if err := ing.Documents.CreateDocument(ctx, doc); err != nil {
		res.Failed++
		return nil
	}
	res.Documents++
	res.Bytes += len(result.markdown)

	maxChars := ing.MaxChars
	if maxChars <= 0 {
		maxChars = locqa.DefaultChunkMaxChars
	}
	overlap := ing.Overlap
	if overlap <= 0 {
		overlap = locqa.DefaultChunkOverlap
	}

	texts := locqa.SplitChunks(result.title, result.markdown, maxChars, overlap)

	var chunks []*locqa.Chunk
	pending := make(map[string]bool)
	for _, text := range texts {
		hash := computeHash(text)

		// The batch is written only after the whole document is
		// processed, so repeats within it never reach HashExists.
		if pending[hash] {
			res.Duplicates++
			continue
		}

		// Bloom filter cuts database lookups; a positive still needs
		// confirmation against the store because of false positives.
		if ing.Filter != nil && ing.Filter.Test(hash) {
			exists, err := ing.Chunks.HashExists(ctx, hash)
			if err != nil {
				return err
			}
			if exists {
				res.Duplicates++
				continue
			}
		}

		if ing.Limiter != nil {
			if err := ing.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		embedding, err := ing.Embedder.EmbedDocument(ctx, text)
		if err != nil {
			return err
		}

		chunks = append(chunks, &locqa.Chunk{
			DocumentID: doc.ID,
			Title:      result.title,
			Text:       text,
			Hash:       hash,
			Embedding:  embedding,
		})
		pending[hash] = true
		if ing.Filter != nil {
			ing.Filter.Add(hash)
		}
	}

	if len(chunks) == 0 {
		return nil
	}
	if err := ing.Chunks.CreateChunks(ctx, chunks); err != nil {
		return err
	}
	res.Chunks += len(chunks)
	return nil
}

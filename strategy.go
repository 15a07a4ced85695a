package locqa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ContextKind tags the origin of a context item.
type ContextKind string

// Context item kinds.
const (
	KindChunk ContextKind = "chunk"
	KindFile  ContextKind = "file"
)

// ContextItem is one unit of gathered context: a retrieved chunk or a
// loaded file. ID is the deduplication identifier (chunk ID or file
// path); Label is a short human-readable name; Source identifies the
// originating document or file for reporting.
type ContextItem struct {
	Kind   ContextKind `json:"kind"`
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Source string      `json:"source"`
	Text   string      `json:"text"`
}

// StrategyResult is the outcome of one retrieval attempt.
type StrategyResult struct {
	// Items are the newly gathered context items, most relevant first.
	Items []ContextItem

	// Sufficient indicates the strategy believes already accumulated
	// context answers the query (directed selection only).
	Sufficient bool
}

// Strategy gathers context for a query. seen contains identifiers
// already accumulated this session; implementations must not return
// items whose identifier is in seen.
type Strategy interface {
	Retrieve(ctx context.Context, query string, seen map[string]bool) (StrategyResult, error)
}

// VectorStrategy adapts a Retriever to the strategy contract: the
// query's nearest-neighbor chunks become context items.
type VectorStrategy struct {
	retriever Retriever
	topK      int
}

var _ Strategy = (*VectorStrategy)(nil)

// NewVectorStrategy creates a VectorStrategy returning up to topK
// chunks per retrieval.
func NewVectorStrategy(retriever Retriever, topK int) *VectorStrategy {
	return &VectorStrategy{retriever: retriever, topK: topK}
}

// Retrieve embeds the query and returns unseen chunks as context items.
func (s *VectorStrategy) Retrieve(ctx context.Context, query string, seen map[string]bool) (StrategyResult, error) {
	chunks, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		// Retrieval unavailability degrades to "no context".
		slog.Warn("vector retrieval failed", "error", err)
		return StrategyResult{}, nil
	}

	var items []ContextItem
	for _, c := range chunks {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		label := c.Title
		if label == "" {
			label = c.ID
		}
		items = append(items, ContextItem{
			Kind:   KindChunk,
			ID:     c.ID,
			Label:  label,
			Source: c.DocumentID,
			Text:   c.Text,
		})
	}
	return StrategyResult{Items: items}, nil
}

// DirectedStrategy asks the model to name relevant files from a
// manifest, then loads them through the file cache. At most
// maxFilesPerIteration new files are loaded per retrieval.
type DirectedStrategy struct {
	completer Completer
	repo      CodeRepository
	manifest  []FileManifestEntry
	memory    *FileMemory
	cfg       Config
}

var _ Strategy = (*DirectedStrategy)(nil)

// maxFilesPerIteration bounds directed selection fan-out.
const maxFilesPerIteration = 3

// NewDirectedStrategy creates a DirectedStrategy over a manifest
// snapshot and a file content cache.
func NewDirectedStrategy(completer Completer, repo CodeRepository, manifest []FileManifestEntry, memory *FileMemory, cfg Config) *DirectedStrategy {
	return &DirectedStrategy{
		completer: completer,
		repo:      repo,
		manifest:  manifest,
		memory:    memory,
		cfg:       cfg,
	}
}

// Retrieve asks the model for up to three new file paths and loads
// them. Per-file I/O failures are skipped; a cache hit avoids the read.
func (s *DirectedStrategy) Retrieve(ctx context.Context, query string, seen map[string]bool) (StrategyResult, error) {
	selection := s.selectFiles(ctx, query, seen)

	paths := make([]string, 0, maxFilesPerIteration)
	for _, p := range selection.Files {
		if seen[p] {
			continue
		}
		paths = append(paths, p)
		if len(paths) == maxFilesPerIteration {
			break
		}
	}

	var items []ContextItem
	for _, path := range paths {
		content, ok := s.load(ctx, path)
		if !ok {
			continue
		}
		items = append(items, ContextItem{
			Kind:   KindFile,
			ID:     path,
			Label:  path,
			Source: path,
			Text:   content,
		})
	}

	return StrategyResult{Items: items, Sufficient: selection.Sufficient}, nil
}

// load returns file content, serving cache hits and caching misses.
// Oversized files keep a head and a tail segment around an omission
// marker so both opening declarations and ending state survive.
func (s *DirectedStrategy) load(ctx context.Context, path string) (string, bool) {
	if content, ok := s.memory.Get(path); ok {
		return content, true
	}

	content, err := s.repo.ReadFile(ctx, path)
	if err != nil {
		slog.Debug("skipping unreadable file", "path", path, "error", err)
		return "", false
	}

	head, tail := s.cfg.FileHeadChars, s.cfg.FileTailChars
	if head > 0 && tail > 0 && len(content) > head+tail {
		omitted := len(content) - head - tail
		content = content[:head] +
			fmt.Sprintf("\n\n... (truncated %d chars) ...\n\n", omitted) +
			content[len(content)-tail:]
	}

	s.memory.Put(path, content)
	return content, true
}

// selectFiles performs the single selection call and parses its result,
// falling back to substring-matching manifest paths against the raw
// reply when no JSON parses.
func (s *DirectedStrategy) selectFiles(ctx context.Context, query string, seen map[string]bool) FileSelection {
	prompt := s.buildSelectionPrompt(query, seen)

	reply, err := s.completer.Complete(ctx, prompt, CompleteOptions{
		Model:         s.cfg.HelperModel,
		ContextWindow: s.cfg.HelperContextWindow,
	})
	if err != nil {
		slog.Warn("file selection failed", "error", err)
		return FileSelection{}
	}

	var selection FileSelection
	if DecodeJSONObject(reply, &selection) {
		return selection
	}

	// Crude fallback: any manifest path mentioned verbatim in the
	// reply, restricted to paths not yet seen.
	for _, entry := range s.manifest {
		if seen[entry.Path] {
			continue
		}
		if strings.Contains(reply, entry.Path) {
			selection.Files = append(selection.Files, entry.Path)
		}
	}
	return selection
}

func (s *DirectedStrategy) buildSelectionPrompt(query string, seen map[string]bool) string {
	var sb strings.Builder
	sb.WriteString("You are a code analysis assistant helping to find relevant files.\n\n")
	sb.WriteString("Available files:\n")

	listed := len(s.manifest)
	if limit := s.cfg.ManifestListingCap; limit > 0 && listed > limit {
		listed = limit
	}
	for i := 0; i < listed; i++ {
		entry := s.manifest[i]
		fmt.Fprintf(&sb, "%d. %s (%d lines, %s)\n", i+1, entry.Path, entry.Lines, entry.Ext)
	}
	if omitted := len(s.manifest) - listed; omitted > 0 {
		fmt.Fprintf(&sb, "... and %d more files\n", omitted)
	}

	if len(seen) > 0 {
		sb.WriteString("\nFiles already analyzed in this search:\n")
		for _, entry := range s.manifest {
			if seen[entry.Path] {
				fmt.Fprintf(&sb, "- %s\n", entry.Path)
			}
		}
	}

	var cached []string
	for _, path := range s.memory.Paths() {
		if !seen[path] {
			cached = append(cached, path)
		}
	}
	if len(cached) > 0 {
		sb.WriteString("\nFiles in cache (available instantly):\n")
		for _, path := range cached {
			fmt.Fprintf(&sb, "- %s\n", path)
		}
	}

	fmt.Fprintf(&sb, "\nUser Question: %s\n", query)
	sb.WriteString(`
Task: Select up to 3 NEW files that would help answer this question.
- Focus on files NOT already analyzed
- Prefer files from cache if they're relevant
- Consider file names, extensions, and typical project structure
- If you have enough information from already analyzed files, return an empty list

Respond in JSON format:
{"files": ["path1", "path2"], "reasoning": "why these files", "sufficient": true/false}

Set "sufficient": true if already analyzed files are enough to answer the question.`)
	return sb.String()
}

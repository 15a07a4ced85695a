package locqa_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorStrategy_Retrieve(t *testing.T) {
	t.Parallel()

	t.Run("chunks become context items", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveFn: func(ctx context.Context, query string, k int) ([]locqa.Chunk, error) {
				assert.Equal(t, 5, k)
				return []locqa.Chunk{
					{ID: "c1", DocumentID: "d1", Title: "Setup", Text: "body one"},
					{ID: "c2", DocumentID: "d2", Title: "", Text: "body two"},
				}, nil
			},
		}

		s := locqa.NewVectorStrategy(retriever, 5)
		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, locqa.KindChunk, result.Items[0].Kind)
		assert.Equal(t, "Setup", result.Items[0].Label)
		assert.Equal(t, "d1", result.Items[0].Source)
		// Untitled chunks fall back to their ID as label.
		assert.Equal(t, "c2", result.Items[1].Label)
		assert.False(t, result.Sufficient)
	})

	t.Run("seen chunks are filtered", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveFn: func(ctx context.Context, query string, k int) ([]locqa.Chunk, error) {
				return []locqa.Chunk{{ID: "c1", Text: "a"}, {ID: "c2", Text: "b"}}, nil
			},
		}

		s := locqa.NewVectorStrategy(retriever, 5)
		result, err := s.Retrieve(context.Background(), "query", map[string]bool{"c1": true})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "c2", result.Items[0].ID)
	})

	t.Run("retriever failure degrades to empty result", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveFn: func(ctx context.Context, query string, k int) ([]locqa.Chunk, error) {
				return nil, errors.New("index unavailable")
			},
		}

		s := locqa.NewVectorStrategy(retriever, 5)
		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}

// directedFixture builds a DirectedStrategy over an in-memory repo.
func directedFixture(t *testing.T, completer locqa.Completer, files map[string]string) (*locqa.DirectedStrategy, *locqa.FileMemory, *int) {
	t.Helper()

	reads := 0
	repo := &mock.CodeRepository{
		ListFilesFn: func(ctx context.Context) ([]string, error) {
			var paths []string
			for p := range files {
				paths = append(paths, p)
			}
			return paths, nil
		},
		ReadFileFn: func(ctx context.Context, path string) (string, error) {
			reads++
			content, ok := files[path]
			if !ok {
				return "", locqa.Errorf(locqa.ENOTFOUND, "file %q not found", path)
			}
			return content, nil
		},
	}

	var manifest []locqa.FileManifestEntry
	for p, content := range files {
		manifest = append(manifest, locqa.FileManifestEntry{Path: p, Size: len(content)})
	}

	cfg := locqa.DefaultConfig()
	memory := locqa.NewFileMemory(cfg.FileCacheCap)
	return locqa.NewDirectedStrategy(completer, repo, manifest, memory, cfg), memory, &reads
}

func TestDirectedStrategy_Retrieve(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.go":     "package main",
		"pkg/a.go":    "package pkg // a",
		"pkg/b.go":    "package pkg // b",
		"pkg/c.go":    "package pkg // c",
		"internal.go": "package main // internal",
	}

	t.Run("loads selected files and caches them", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": ["main.go", "pkg/a.go"], "reasoning": "entry points", "sufficient": false}`, nil)
		s, memory, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "how does it start", map[string]bool{})

		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, locqa.KindFile, result.Items[0].Kind)
		assert.Equal(t, "main.go", result.Items[0].ID)
		assert.Equal(t, 2, memory.Len())
	})

	t.Run("selection is capped at three new files", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": ["main.go", "pkg/a.go", "pkg/b.go", "pkg/c.go"], "sufficient": false}`, nil)
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		assert.Len(t, result.Items, 3)
	})

	t.Run("seen paths are never reloaded", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": ["main.go", "pkg/a.go"], "sufficient": false}`, nil)
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{"main.go": true})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "pkg/a.go", result.Items[0].ID)
	})

	t.Run("cache hit avoids repository read", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": ["main.go"], "sufficient": false}`, nil)
		s, memory, reads := directedFixture(t, completer, files)
		memory.Put("main.go", "cached content")

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "cached content", result.Items[0].Text)
		assert.Equal(t, 0, *reads)
	})

	t.Run("oversized files keep head and tail around a marker", func(t *testing.T) {
		t.Parallel()

		cfg := locqa.DefaultConfig()
		head := strings.Repeat("H", cfg.FileHeadChars)
		middle := strings.Repeat("M", 3000)
		tail := strings.Repeat("T", cfg.FileTailChars)
		big := map[string]string{"big.go": head + middle + tail}

		completer := fixedCompleter(`{"files": ["big.go"], "sufficient": false}`, nil)
		s, _, _ := directedFixture(t, completer, big)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		text := result.Items[0].Text
		assert.True(t, strings.HasPrefix(text, "H"))
		assert.True(t, strings.HasSuffix(text, "T"))
		assert.Contains(t, text, "... (truncated 3000 chars) ...")
		assert.NotContains(t, text, "M")
	})

	t.Run("unreadable files are skipped", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": ["missing.go", "main.go"], "sufficient": false}`, nil)
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "main.go", result.Items[0].ID)
	})

	t.Run("unparseable reply falls back to path matching", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter("I would look at main.go and maybe pkg/a.go first", nil)
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		ids := make([]string, 0, len(result.Items))
		for _, item := range result.Items {
			ids = append(ids, item.ID)
		}
		assert.ElementsMatch(t, []string{"main.go", "pkg/a.go"}, ids)
	})

	t.Run("selection failure yields empty result", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter("", errors.New("model down"))
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})

	t.Run("sufficient flag passes through", func(t *testing.T) {
		t.Parallel()

		completer := fixedCompleter(`{"files": [], "reasoning": "enough already", "sufficient": true}`, nil)
		s, _, _ := directedFixture(t, completer, files)

		result, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		assert.True(t, result.Sufficient)
		assert.Empty(t, result.Items)
	})
}

func TestDirectedStrategy_SelectionPrompt(t *testing.T) {
	t.Parallel()

	t.Run("prompt lists manifest, analyzed, and cached files", func(t *testing.T) {
		t.Parallel()

		var prompt string
		completer := &mock.Completer{
			CompleteFn: func(ctx context.Context, p string, opts locqa.CompleteOptions) (string, error) {
				prompt = p
				return `{"files": [], "sufficient": false}`, nil
			},
		}

		files := map[string]string{"a.go": "x", "b.go": "y", "c.go": "z"}
		s, memory, _ := directedFixture(t, completer, files)
		memory.Put("c.go", "cached")

		_, err := s.Retrieve(context.Background(), "where is the parser", map[string]bool{"b.go": true})

		require.NoError(t, err)
		assert.Contains(t, prompt, "a.go")
		assert.Contains(t, prompt, "Files already analyzed in this search:")
		assert.Contains(t, prompt, "Files in cache (available instantly):")
		assert.Contains(t, prompt, "where is the parser")
	})

	t.Run("manifest listing is capped with an omission count", func(t *testing.T) {
		t.Parallel()

		var prompt string
		completer := &mock.Completer{
			CompleteFn: func(ctx context.Context, p string, opts locqa.CompleteOptions) (string, error) {
				prompt = p
				return `{"files": [], "sufficient": false}`, nil
			},
		}

		files := make(map[string]string)
		for i := 0; i < 205; i++ {
			files[fmt.Sprintf("file%03d.go", i)] = "x"
		}
		s, _, _ := directedFixture(t, completer, files)

		_, err := s.Retrieve(context.Background(), "query", map[string]bool{})

		require.NoError(t, err)
		assert.Contains(t, prompt, "... and 5 more files")
	})
}

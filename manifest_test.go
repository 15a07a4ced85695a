package locqa_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildManifest(t *testing.T) {
	t.Parallel()

	t.Run("builds entries with metadata and preview", func(t *testing.T) {
		t.Parallel()

		files := map[string]string{
			"main.go":   "package main\n\nfunc main() {}\n",
			"README.md": "readme",
		}
		repo := &mock.CodeRepository{
			ListFilesFn: func(ctx context.Context) ([]string, error) {
				return []string{"README.md", "main.go"}, nil
			},
			ReadFileFn: func(ctx context.Context, path string) (string, error) {
				return files[path], nil
			},
		}

		entries, err := locqa.BuildManifest(context.Background(), repo, 500)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "README.md", entries[0].Path)
		assert.Equal(t, ".md", entries[0].Ext)
		assert.Equal(t, len("readme"), entries[0].Size)
		assert.Equal(t, 1, entries[0].Lines)
		assert.Equal(t, 4, entries[1].Lines)
		assert.Equal(t, files["main.go"], entries[1].Preview)
	})

	t.Run("previews are capped", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("x", 600)
		repo := &mock.CodeRepository{
			ListFilesFn: func(ctx context.Context) ([]string, error) {
				return []string{"big.txt"}, nil
			},
			ReadFileFn: func(ctx context.Context, path string) (string, error) {
				return content, nil
			},
		}

		entries, err := locqa.BuildManifest(context.Background(), repo, 500)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Len(t, entries[0].Preview, 500)
		assert.Equal(t, 600, entries[0].Size)
	})

	t.Run("unreadable files are skipped", func(t *testing.T) {
		t.Parallel()

		repo := &mock.CodeRepository{
			ListFilesFn: func(ctx context.Context) ([]string, error) {
				return []string{"good.go", "broken.go"}, nil
			},
			ReadFileFn: func(ctx context.Context, path string) (string, error) {
				if path == "broken.go" {
					return "", locqa.Errorf(locqa.EINTERNAL, "read failed")
				}
				return "package good", nil
			},
		}

		entries, err := locqa.BuildManifest(context.Background(), repo, 500)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "good.go", entries[0].Path)
	})

	t.Run("listing failure propagates", func(t *testing.T) {
		t.Parallel()

		repo := &mock.CodeRepository{
			ListFilesFn: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("no such directory")
			},
		}

		_, err := locqa.BuildManifest(context.Background(), repo, 500)
		assert.Error(t, err)
	})
}

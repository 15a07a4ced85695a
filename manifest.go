package locqa

import (
	"context"
	"path/filepath"
	"strings"
)

// CodeRepository provides read-only access to a source code tree rooted
// at a sandboxed directory. The tree is assumed not to change during a
// session.
type CodeRepository interface {
	// ListFiles returns all file paths relative to the root, sorted.
	ListFiles(ctx context.Context) ([]string, error)

	// ReadFile returns the content of the file at the relative path.
	// Returns ENOTFOUND if the file does not exist and EINVALID if the
	// path escapes the root.
	ReadFile(ctx context.Context, path string) (string, error)
}

// FileManifestEntry is read-only metadata about one file in the code
// corpus, built once per session.
type FileManifestEntry struct {
	Path    string `json:"path"`
	Size    int    `json:"size"`
	Lines   int    `json:"lines"`
	Ext     string `json:"extension"`
	Preview string `json:"preview"`
}

// BuildManifest reads every file in the repository and returns a
// manifest snapshot. Files that cannot be read are skipped; the
// snapshot does not reflect concurrent external edits.
func BuildManifest(ctx context.Context, repo CodeRepository, previewChars int) ([]FileManifestEntry, error) {
	paths, err := repo.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]FileManifestEntry, 0, len(paths))
	for _, path := range paths {
		content, err := repo.ReadFile(ctx, path)
		if err != nil {
			continue
		}
		preview := content
		if previewChars > 0 && len(preview) > previewChars {
			preview = preview[:previewChars]
		}
		entries = append(entries, FileManifestEntry{
			Path:    path,
			Size:    len(content),
			Lines:   strings.Count(content, "\n") + 1,
			Ext:     filepath.Ext(path),
			Preview: preview,
		})
	}
	return entries, nil
}

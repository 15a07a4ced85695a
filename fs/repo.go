// Package fs provides filesystem-backed implementations of locqa
// storage interfaces.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/locqa"
)

// Ensure Repo implements locqa.CodeRepository at compile time.
var _ locqa.CodeRepository = (*Repo)(nil)

// Repo implements locqa.CodeRepository over a directory tree. All reads
// are confined to the root; paths that resolve outside it are rejected.
type Repo struct {
	root string
}

// NewRepo creates a new Repo rooted at dir.
func NewRepo(dir string) *Repo {
	return &Repo{root: filepath.Clean(dir)}
}

// Root returns the repository root directory.
func (r *Repo) Root() string {
	return r.root
}

// ListFiles returns all regular file paths relative to the root, sorted
// lexicographically with forward slashes. Hidden directories such as
// .git are skipped.
func (r *Repo) ListFiles(ctx context.Context) ([]string, error) {
	info, err := os.Stat(r.root)
	if err != nil {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "codebase directory %q not found", r.root)
	}
	if !info.IsDir() {
		return nil, locqa.Errorf(locqa.EINVALID, "%q is not a directory", r.root)
	}

	var paths []string
	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != r.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadFile returns the content of the file at the relative path.
func (r *Repo) ReadFile(ctx context.Context, path string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	full, err := r.resolve(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return "", locqa.Errorf(locqa.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolve joins path onto the root and rejects paths that escape it.
func (r *Repo) resolve(path string) (string, error) {
	if path == "" {
		return "", locqa.Errorf(locqa.EINVALID, "path required")
	}
	if filepath.IsAbs(path) {
		return "", locqa.Errorf(locqa.EINVALID, "path %q must be relative", path)
	}

	full := filepath.Join(r.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(r.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", locqa.Errorf(locqa.EINVALID, "path %q escapes the codebase root", path)
	}
	return full, nil
}

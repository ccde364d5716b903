// Package fs provides file-based page sources and fragment storage.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/flexlist"
)

// SourceExt is the extension of page source files.
const SourceExt = ".txt"

// PageToPath converts a page name to a relative file path with ext.
// Hierarchical names map to directories.
// Example: Projects/Inventory → Projects/Inventory.txt
func PageToPath(name, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", flexlist.Errorf(flexlist.EINVALID, "page name required")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", flexlist.Errorf(flexlist.EINVALID, "invalid page name %q", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return "", flexlist.Errorf(flexlist.EINVALID, "invalid page name %q", name)
		}
	}
	return filepath.FromSlash(name) + ext, nil
}

// Ensure Source implements flexlist.PageSource at compile time.
var _ flexlist.PageSource = (*Source)(nil)

// Source reads page sources from a directory, one file per page.
type Source struct {
	baseDir string
}

// NewSource creates a new Source reading from baseDir.
func NewSource(baseDir string) *Source {
	return &Source{baseDir: baseDir}
}

// FindSource returns the contents of the page's source file.
func (s *Source) FindSource(ctx context.Context, name string) (string, error) {
	relPath, err := PageToPath(name, SourceExt)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, relPath))
	if errors.Is(err, iofs.ErrNotExist) {
		return "", flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PageNames returns the names of all pages under the base directory, sorted.
func (s *Source) PageNames(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.baseDir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(strings.TrimSuffix(rel, SourceExt)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

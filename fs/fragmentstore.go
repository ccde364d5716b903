package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/flexlist"
)

// FragmentExt is the extension of rendered fragment files.
const FragmentExt = ".html"

// Ensure FragmentStore implements flexlist.FragmentWriter at compile time.
var _ flexlist.FragmentWriter = (*FragmentStore)(nil)

// FragmentStore implements flexlist.FragmentWriter with atomic update
// semantics. Fragments are written to a temporary directory, then moved
// into place on Commit.
type FragmentStore struct {
	baseDir string
	name    string
}

// NewFragmentStore creates a new FragmentStore.
// baseDir is the parent directory, name is the output directory name.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFragmentStore(baseDir, name string) *FragmentStore {
	return &FragmentStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FragmentStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FragmentStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteFragment writes the fragment of the named page.
func (s *FragmentStore) WriteFragment(ctx context.Context, name string, html []byte) error {
	relPath, err := PageToPath(name, FragmentExt)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, html, 0644)
}

// Commit replaces the output directory with the written fragments.
func (s *FragmentStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the written fragments.
func (s *FragmentStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

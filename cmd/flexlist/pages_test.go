package main_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/flexlist"
	main "github.com/fwojciec/flexlist/cmd/flexlist"
	"github.com/fwojciec/flexlist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates a page from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "inventory.txt")
		require.NoError(t, os.WriteFile(path, []byte(inventoryPage), 0o644))

		var created *flexlist.Page
		deps, stdout, _ := testDeps(t, nil)
		deps.Pages = &mock.PageService{
			FindPagesFn: func(context.Context, flexlist.PageFilter) ([]*flexlist.Page, error) {
				return nil, nil
			},
			CreatePageFn: func(_ context.Context, p *flexlist.Page) error {
				created = p
				return nil
			},
		}

		err := (&main.ImportCmd{Name: "inventory", File: path}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "inventory", created.Name)
		assert.Equal(t, inventoryPage, created.Source)
		assert.Contains(t, stdout.String(), `Imported page "inventory"`)
	})

	t.Run("replaces the source of an existing page from stdin", func(t *testing.T) {
		t.Parallel()

		var updatedID, updatedSource string
		deps, stdout, _ := testDeps(t, nil)
		deps.Stdin = strings.NewReader("new source")
		deps.Pages = &mock.PageService{
			FindPagesFn: func(_ context.Context, filter flexlist.PageFilter) ([]*flexlist.Page, error) {
				if filter.Name != nil && *filter.Name == "inventory" {
					return []*flexlist.Page{{ID: "page-1", Name: "inventory"}}, nil
				}
				return nil, nil
			},
			UpdatePageFn: func(_ context.Context, id string, upd flexlist.PageUpdate) (*flexlist.Page, error) {
				updatedID, updatedSource = id, *upd.Source
				return &flexlist.Page{ID: id}, nil
			},
		}

		err := (&main.ImportCmd{Name: "inventory", File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "page-1", updatedID)
		assert.Equal(t, "new source", updatedSource)
		assert.Contains(t, stdout.String(), "Updated page")
	})

	t.Run("rejects an empty source", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t, nil)
		deps.Stdin = strings.NewReader(" \n")

		err := (&main.ImportCmd{Name: "inventory", File: "-"}).Run(deps)

		assert.Equal(t, flexlist.EINVALID, flexlist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "empty")
	})

	t.Run("reports a missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(t, nil)

		err := (&main.ImportCmd{Name: "inventory", File: filepath.Join(t.TempDir(), "nope")}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists stored pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t, nil)
		deps.Pages = &mock.PageService{
			FindPagesFn: func(context.Context, flexlist.PageFilter) ([]*flexlist.Page, error) {
				return []*flexlist.Page{
					{ID: "p1", Name: "inventory", Source: "abc"},
					{ID: "p2", Name: "stations", Source: "abcdef"},
				}, nil
			},
		}

		require.NoError(t, (&main.PagesCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "p1  inventory  3 bytes")
		assert.Contains(t, stdout.String(), "p2  stations  6 bytes")
	})

	t.Run("hints at import when empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t, nil)
		deps.Pages = &mock.PageService{
			FindPagesFn: func(context.Context, flexlist.PageFilter) ([]*flexlist.Page, error) {
				return []*flexlist.Page{}, nil
			},
		}

		require.NoError(t, (&main.PagesCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "flexlist import")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	pageService := func(deleted *string) *mock.PageService {
		return &mock.PageService{
			FindPagesFn: func(_ context.Context, filter flexlist.PageFilter) ([]*flexlist.Page, error) {
				if filter.Name != nil && *filter.Name == "inventory" {
					return []*flexlist.Page{{ID: "page-1", Name: "inventory"}}, nil
				}
				return []*flexlist.Page{}, nil
			},
			DeletePageFn: func(_ context.Context, id string) error {
				*deleted = id
				return nil
			},
		}
	}

	t.Run("deletes page when --force is set", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, stdout, _ := testDeps(t, nil)
		deps.Pages = pageService(&deleted)

		require.NoError(t, (&main.DeleteCmd{Name: "inventory", Force: true}).Run(deps))

		assert.Equal(t, "page-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, _, stderr := testDeps(t, nil)
		deps.Pages = pageService(&deleted)

		err := (&main.DeleteCmd{Name: "inventory"}).Run(deps)

		require.Error(t, err)
		assert.Empty(t, deleted)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports an unknown page", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, _, stderr := testDeps(t, nil)
		deps.Pages = pageService(&deleted)

		err := (&main.DeleteCmd{Name: "nope", Force: true}).Run(deps)

		assert.Equal(t, flexlist.ENOTFOUND, flexlist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

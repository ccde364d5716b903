package mock

import (
	"context"

	"github.com/fwojciec/flexlist"
)

// Compile-time interface verification.
var (
	_ flexlist.PageSource     = (*PageSource)(nil)
	_ flexlist.PageService    = (*PageService)(nil)
	_ flexlist.FragmentWriter = (*FragmentWriter)(nil)
)

// PageSource is a mock implementation of flexlist.PageSource.
type PageSource struct {
	FindSourceFn func(ctx context.Context, name string) (string, error)
}

func (s *PageSource) FindSource(ctx context.Context, name string) (string, error) {
	return s.FindSourceFn(ctx, name)
}

// PageService is a mock implementation of flexlist.PageService.
type PageService struct {
	CreatePageFn   func(ctx context.Context, page *flexlist.Page) error
	FindPageByIDFn func(ctx context.Context, id string) (*flexlist.Page, error)
	FindPagesFn    func(ctx context.Context, filter flexlist.PageFilter) ([]*flexlist.Page, error)
	UpdatePageFn   func(ctx context.Context, id string, upd flexlist.PageUpdate) (*flexlist.Page, error)
	DeletePageFn   func(ctx context.Context, id string) error
}

func (s *PageService) CreatePage(ctx context.Context, page *flexlist.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*flexlist.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter flexlist.PageFilter) ([]*flexlist.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) UpdatePage(ctx context.Context, id string, upd flexlist.PageUpdate) (*flexlist.Page, error) {
	return s.UpdatePageFn(ctx, id, upd)
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	return s.DeletePageFn(ctx, id)
}

// FragmentWriter is a mock implementation of flexlist.FragmentWriter.
type FragmentWriter struct {
	WriteFragmentFn func(ctx context.Context, name string, html []byte) error
}

func (w *FragmentWriter) WriteFragment(ctx context.Context, name string, html []byte) error {
	return w.WriteFragmentFn(ctx, name, html)
}

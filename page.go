package flexlist

import (
	"context"
	"time"
)

// Page is a stored wiki page source.
type Page struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "page name required")
	}
	return nil
}

// PageSource retrieves the raw source of a named page.
type PageSource interface {
	// FindSource returns the source of the named page.
	// Returns ENOTFOUND if the page does not exist.
	FindSource(ctx context.Context, name string) (string, error)
}

// PageService represents a service for managing stored pages.
type PageService interface {
	// CreatePage creates a new page. Returns EINVALID if the name is taken.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter, ordered by name.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// UpdatePage replaces the source of an existing page.
	// Returns ENOTFOUND if page does not exist.
	UpdatePage(ctx context.Context, id string, upd PageUpdate) (*Page, error)

	// DeletePage permanently removes a page.
	// Returns ENOTFOUND if page does not exist.
	DeletePage(ctx context.Context, id string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageUpdate represents a set of fields to update on a page.
type PageUpdate struct {
	Source *string `json:"source"`
}

// FragmentWriter stores rendered page fragments.
type FragmentWriter interface {
	WriteFragment(ctx context.Context, name string, html []byte) error
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/flexlist"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ flexlist.PageService = (*PageService)(nil)
	_ flexlist.PageSource  = (*PageService)(nil)
)

// PageService implements flexlist.PageService using SQLite. It also serves
// stored sources as a flexlist.PageSource.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreatePage creates a new page.
func (s *PageService) CreatePage(ctx context.Context, page *flexlist.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	existing, err := s.FindPages(ctx, flexlist.PageFilter{Name: &page.Name, Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return flexlist.Errorf(flexlist.EINVALID, "page %q already exists", page.Name)
	}

	page.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	page.CreatedAt = now
	page.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, name, source, source_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, page.ID, page.Name, page.Source, hashContent(page.Source),
		timestamp(page.CreatedAt), timestamp(page.UpdatedAt))

	return err
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*flexlist.Page, error) {
	pages, err := s.FindPages(ctx, flexlist.PageFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, flexlist.Errorf(flexlist.ENOTFOUND, "page not found")
	}
	return pages[0], nil
}

// FindPages retrieves pages matching the filter, ordered by name.
func (s *PageService) FindPages(ctx context.Context, filter flexlist.PageFilter) ([]*flexlist.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source, created_at, updated_at FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")

	clause, clauseArgs := limitOffset(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, clauseArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*flexlist.Page
	for rows.Next() {
		var page flexlist.Page
		if err := rows.Scan(&page.ID, &page.Name, &page.Source,
			(*timestamp)(&page.CreatedAt), (*timestamp)(&page.UpdatedAt)); err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// UpdatePage replaces the source of an existing page.
func (s *PageService) UpdatePage(ctx context.Context, id string, upd flexlist.PageUpdate) (*flexlist.Page, error) {
	page, err := s.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Source != nil {
		page.Source = *upd.Source
	}
	page.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE pages
		SET source = ?, source_hash = ?, updated_at = ?
		WHERE id = ?
	`, page.Source, hashContent(page.Source), timestamp(page.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return page, nil
}

// DeletePage permanently removes a page.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return flexlist.Errorf(flexlist.ENOTFOUND, "page not found")
	}

	return nil
}

// FindSource returns the stored source of the named page.
func (s *PageService) FindSource(ctx context.Context, name string) (string, error) {
	var source string
	err := s.db.QueryRowContext(ctx, "SELECT source FROM pages WHERE name = ?", name).Scan(&source)
	if err == sql.ErrNoRows {
		return "", flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", name)
	}
	if err != nil {
		return "", err
	}
	return source, nil
}

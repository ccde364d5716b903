package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/flexlist"
)

// Compile-time interface verification.
var _ flexlist.DatasetCache = (*DatasetCache)(nil)

// DatasetCache implements flexlist.DatasetCache using SQLite. Datasets are
// stored as JSON.
type DatasetCache struct {
	db *DB
}

// NewDatasetCache creates a new DatasetCache.
func NewDatasetCache(db *DB) *DatasetCache {
	return &DatasetCache{db: db}
}

// FindDataset returns the dataset stored under hash.
func (c *DatasetCache) FindDataset(ctx context.Context, hash string) (*flexlist.Dataset, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, "SELECT payload FROM datasets WHERE hash = ?", hash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, flexlist.Errorf(flexlist.ENOTFOUND, "dataset not found")
	}
	if err != nil {
		return nil, err
	}

	ds, err := flexlist.DecodeDataset(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", hash, err)
	}
	return ds, nil
}

// SaveDataset stores ds under hash, replacing any previous entry.
func (c *DatasetCache) SaveDataset(ctx context.Context, hash string, ds *flexlist.Dataset) error {
	var buf bytes.Buffer
	if err := flexlist.EncodeDataset(&buf, ds); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO datasets (hash, payload, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at
	`, hash, buf.Bytes(), timestamp(time.Now()))

	return err
}

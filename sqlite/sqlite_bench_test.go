package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkDatasetCache_SaveDataset measures storing a 500-row dataset in a
// file-backed database.
func BenchmarkDatasetCache_SaveDataset(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ds := &flexlist.Dataset{
		Settings: flexlist.DefaultSettings(),
		Columns: []flexlist.Column{
			{Key: "name", Label: "Name"},
			{Key: "status", Label: "Status", Caps: flexlist.CapFilter},
		},
	}
	for i := range 500 {
		ds.Rows = append(ds.Rows, flexlist.Row{
			"name":   fmt.Sprintf("<strong>Item %d</strong>", i),
			"status": []string{"open", "closed"}[i%2],
		})
	}

	cache := sqlite.NewDatasetCache(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := cache.SaveDataset(ctx, fmt.Sprintf("hash%d", i), ds); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPageService_CreatePage measures page inserts including the name
// uniqueness check.
func BenchmarkPageService_CreatePage(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		page := &flexlist.Page{
			Name:   fmt.Sprintf("Page%d", i),
			Source: "#flexlist_config\n#flexlist_endconfig\n#flexlist_data\n#flexlist_enddata\n",
		}
		if err := svc.CreatePage(ctx, page); err != nil {
			b.Fatal(err)
		}
	}
}

package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("migrates a new database to the current version", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		version, err := db.Version(ctx)
		require.NoError(t, err)
		assert.Equal(t, sqlite.SchemaVersion, version)

		for _, table := range []string{"pages", "datasets"} {
			var n int
			require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		}
	})

	t.Run("keeps data when reopened", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "flexlist.db")
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewPageService(db).CreatePage(ctx, &flexlist.Page{Name: "stations", Source: "x"}))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		source, err := sqlite.NewPageService(db).FindSource(ctx, "stations")
		require.NoError(t, err)
		assert.Equal(t, "x", source)
	})

	t.Run("refuses a database from a newer version", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "future.db")
		raw, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		_, err = raw.Exec("PRAGMA user_version = 999")
		require.NoError(t, err)
		require.NoError(t, raw.Close())

		err = sqlite.NewDB(path).Open()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer")
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewDB("/nonexistent/path/db.sqlite").Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode)
	})
}

package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT);`)
	require.NoError(t, err)
	return db
}

func insertAndCount(t *testing.T, ctx context.Context, q DBTX) int {
	t.Helper()
	_, err := q.ExecContext(ctx, `INSERT INTO t(v) VALUES ('x')`)
	require.NoError(t, err)
	var n int
	require.NoError(t, q.QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestDBTX_DBAndTxAreInterchangeable(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	require.Equal(t, 1, insertAndCount(t, ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, insertAndCount(t, ctx, tx))
	require.NoError(t, tx.Rollback())

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 1, n, "rolled back insert must not be visible")
}

package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestWithTransaction(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	count := func() int {
		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM pg_tables WHERE tablename = 'tx_check_committed'`).Scan(&n))
		return n
	}

	t.Run("RollsBackOnError", func(t *testing.T) {
		boom := errors.New("boom")
		err := WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `CREATE TABLE tx_check_committed (v INT)`); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, count())
	})

	t.Run("RollsBackOnPanic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = WithTransaction(ctx, pool, func(tx pgx.Tx) error {
				_, _ = tx.Exec(ctx, `CREATE TABLE tx_check_committed (v INT)`)
				panic("boom")
			})
		})
		assert.Equal(t, 0, count())
	})

	t.Run("Commits", func(t *testing.T) {
		t.Cleanup(func() { _, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS tx_check_committed`) })
		require.NoError(t, WithTransaction(ctx, pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `CREATE TABLE tx_check_committed (v INT)`)
			return err
		}))
		assert.Equal(t, 1, count())
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testPool(t)

	require.NoError(t, migrate(context.Background(), pool))
	require.NoError(t, migrate(context.Background(), pool))
}

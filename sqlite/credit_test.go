package sqlite_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditService_Balance(t *testing.T) {
	t.Parallel()

	t.Run("unknown user has zero balance", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)

		balance, err := s.Balance(context.Background(), "nobody")

		require.NoError(t, err)
		assert.Equal(t, 0, balance)
	})

	t.Run("reflects grants", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)
		ctx := context.Background()

		require.NoError(t, s.Grant(ctx, "user-1", 3, "signup grant"))
		require.NoError(t, s.Grant(ctx, "user-1", 10, "top-up"))

		balance, err := s.Balance(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, 13, balance)
	})
}

func TestCreditService_Consume(t *testing.T) {
	t.Parallel()

	t.Run("decrements balance and records ledger entry", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)
		ctx := context.Background()

		require.NoError(t, s.Grant(ctx, "user-1", 3, "signup grant"))

		ok, err := s.Consume(ctx, "user-1", 1, "schema generation")

		require.NoError(t, err)
		assert.True(t, ok)

		balance, err := s.Balance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, balance)

		var entries int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credit_ledger WHERE user_id = ?", "user-1").Scan(&entries)
		require.NoError(t, err)
		assert.Equal(t, 2, entries) // grant + consume
	})

	t.Run("returns false without error when funds insufficient", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)
		ctx := context.Background()

		require.NoError(t, s.Grant(ctx, "user-1", 1, "signup grant"))

		ok, err := s.Consume(ctx, "user-1", 2, "schema generation")

		require.NoError(t, err)
		assert.False(t, ok)

		// Balance untouched
		balance, err := s.Balance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, balance)
	})

	t.Run("returns false for unknown user", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)

		ok, err := s.Consume(context.Background(), "nobody", 1, "schema generation")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)

		_, err := s.Consume(context.Background(), "user-1", 0, "schema generation")

		assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	})

	t.Run("never overdraws under concurrent consumption", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCreditService(db)
		ctx := context.Background()

		const credits = 5
		const requests = 20

		require.NoError(t, s.Grant(ctx, "user-1", credits, "signup grant"))

		var succeeded atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < requests; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.Consume(ctx, "user-1", 1, "schema generation")
				assert.NoError(t, err)
				if ok {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(credits), succeeded.Load())

		balance, err := s.Balance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, balance)
	})
}

func TestCreditService_Refund(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewCreditService(db)
	ctx := context.Background()

	require.NoError(t, s.Grant(ctx, "user-1", 3, "signup grant"))

	ok, err := s.Consume(ctx, "user-1", 1, "schema generation")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Refund(ctx, "user-1", 1, "persist failure refund"))

	balance, err := s.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, balance)
}

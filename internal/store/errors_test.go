package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanara/arcanara/internal/store"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	t.Run("matches entity-specific not found errors", func(t *testing.T) {
		t.Parallel()
		assert.True(t, store.IsNotFoundError(store.ErrPreferenceNotFound))
		assert.True(t, store.IsNotFoundError(store.ErrDailyCardNotFound))
		assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	})

	t.Run("matches wrapped not found errors", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("lookup: %w", store.ErrPreferenceNotFound)
		assert.True(t, store.IsNotFoundError(wrapped))
	})

	t.Run("rejects unrelated errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, store.IsNotFoundError(errors.New("boom")))
		assert.False(t, store.IsNotFoundError(store.ErrTransactionFailed))
		assert.False(t, store.IsNotFoundError(nil))
	})
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("formats entity, operation and cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection reset")
		err := store.NewStoreError("preference", "upsert", "exec failed", cause)

		assert.Equal(t,
			"upsert operation on preference failed: exec failed: connection reset",
			err.Error())
	})

	t.Run("formats without a cause", func(t *testing.T) {
		t.Parallel()
		err := store.NewStoreError("history", "query", "bad limit", nil)

		assert.Equal(t, "query operation on history failed: bad limit", err.Error())
	})

	t.Run("unwraps to the original error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection reset")
		err := store.NewStoreError("daily_card", "insert", "exec failed", cause)

		assert.True(t, errors.Is(err, cause))

		var storeErr *store.StoreError
		assert.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "daily_card", storeErr.Entity)
		assert.Equal(t, "insert", storeErr.Operation)
	})
}

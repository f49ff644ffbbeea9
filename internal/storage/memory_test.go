package storage_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Hits int `json:"hits"`
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := t.Context()
	key := storage.Key("abc", storage.CartKey)

	t.Run("Success - round trip", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()

		// Act
		require.NoError(t, store.Set(ctx, key, counter{Hits: 3}))

		var got counter
		found, err := store.Get(ctx, key, &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 3, got.Hits)
	})

	t.Run("Success - missing key", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()

		// Act
		var got counter
		found, err := store.Get(ctx, key, &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - delete removes the key", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, key, counter{Hits: 1}))

		// Act
		require.NoError(t, store.Delete(ctx, key))

		var got counter
		found, err := store.Get(ctx, key, &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Failure - malformed value", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		store.SetRaw(key, []byte("{not json"))

		// Act
		got := counter{Hits: 9}
		found, err := store.Get(ctx, key, &got)

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrMalformed))
		assert.False(t, found)
		assert.Zero(t, got.Hits)
	})
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := t.Context()
	key := storage.Key("abc", storage.CartKey)

	t.Run("Success - missing key reports not found", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		var seen bool

		// Act
		var value counter
		err := store.Update(ctx, key, &value, func(found bool) error {
			seen = found
			value.Hits++
			return nil
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, seen)

		var got counter
		_, err = store.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Hits)
	})

	t.Run("Success - malformed value starts over", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		store.SetRaw(key, []byte("[1,2"))
		seen := true

		// Act
		var value counter
		err := store.Update(ctx, key, &value, func(found bool) error {
			seen = found
			value.Hits = 5
			return nil
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, seen)

		var got counter
		_, err = store.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Hits)
	})

	t.Run("Failure - callback error skips the write", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, key, counter{Hits: 2}))
		boom := errors.New("boom")

		// Act
		var value counter
		err := store.Update(ctx, key, &value, func(found bool) error {
			value.Hits = 100
			return boom
		})

		// Assert
		assert.ErrorIs(t, err, boom)

		var got counter
		_, err = store.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Hits)
	})

	t.Run("Success - concurrent updates are not lost", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		const writers = 50

		// Act
		var wg sync.WaitGroup
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var value counter
				_ = store.Update(ctx, key, &value, func(bool) error {
					value.Hits++
					return nil
				})
			}()
		}
		wg.Wait()

		// Assert
		var got counter
		_, err := store.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.Equal(t, writers, got.Hits)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "session:abc:wishlist", storage.Key("abc", storage.WishlistKey))
}

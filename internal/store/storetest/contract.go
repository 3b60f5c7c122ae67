// Package storetest holds the behavioural contract every KeyValueStore
// backend must satisfy.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
)

// Factory returns an initialised-or-not backend for one subtest. The
// contract calls Init itself.
type Factory func(t *testing.T) store.KeyValueStore

// Run exercises the KeyValueStore contract against backends built by factory.
func Run(t *testing.T, factory Factory) {
	t.Helper()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		_, err := kv.Read(ctx, store.KeyNumbersProgress)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("write then read round trips", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		require.NoError(t, kv.Write(ctx, store.KeyNumbersProgress, []byte(`{"currentDay":3}`)))
		got, err := kv.Read(ctx, store.KeyNumbersProgress)
		require.NoError(t, err)
		assert.JSONEq(t, `{"currentDay":3}`, string(got))
	})

	t.Run("write replaces previous value", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		require.NoError(t, kv.Write(ctx, store.KeyNoRepWords, []byte(`{"v":1}`)))
		require.NoError(t, kv.Write(ctx, store.KeyNoRepWords, []byte(`{"v":2}`)))
		got, err := kv.Read(ctx, store.KeyNoRepWords)
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		require.NoError(t, kv.Write(ctx, store.KeyNoRepWords, []byte(`["a"]`)))
		require.NoError(t, kv.Write(ctx, store.KeyNoRepSentences, []byte(`["b"]`)))

		words, err := kv.Read(ctx, store.KeyNoRepWords)
		require.NoError(t, err)
		assert.JSONEq(t, `["a"]`, string(words))
	})

	t.Run("init is idempotent", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))
		require.NoError(t, kv.Write(ctx, store.KeyBookProgress, []byte(`[]`)))
		require.NoError(t, kv.Init(ctx))

		_, err := kv.Read(ctx, store.KeyBookProgress)
		assert.NoError(t, err)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		assert.ErrorIs(t, kv.Write(ctx, "", []byte(`{}`)), store.ErrEmptyKey)
	})

	t.Run("batch writes every entry", func(t *testing.T) {
		ctx := context.Background()
		kv := factory(t)
		require.NoError(t, kv.Init(ctx))

		err := store.WriteBatch(ctx, kv, []store.Entry{
			{Key: store.KeyBookProgress, Value: []byte(`[{"bookId":0}]`)},
			{Key: store.KeyBookSessionLog, Value: []byte(`[]`)},
		})
		require.NoError(t, err)

		for _, key := range []string{store.KeyBookProgress, store.KeyBookSessionLog} {
			_, err := kv.Read(ctx, key)
			assert.NoError(t, err, key)
		}
	})

	t.Run("canceled context fails", func(t *testing.T) {
		kv := factory(t)
		require.NoError(t, kv.Init(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, kv.Write(ctx, store.KeyNumbersProgress, []byte(`{}`)), context.Canceled)
	})
}

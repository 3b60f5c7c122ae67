package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/platform/postgres"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store"
	"github.com/michalchudziak/NaukaLiluka-sub000/internal/store/storetest"
)

// testDatabaseURL returns the database used by integration tests, skipping
// when none is configured.
func testDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("LILUKA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LILUKA_TEST_DATABASE_URL not set")
	}
	return url
}

func newTestStore(t *testing.T, namespace string) *postgres.PostgresKVStore {
	t.Helper()
	db, err := postgres.OpenDB(context.Background(), testDatabaseURL(t), postgres.PoolOptions{
		MaxOpenConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewPostgresKVStore(db, namespace, nil)
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.KeyValueStore {
		return newTestStore(t, "test-"+uuid.NewString())
	})
}

func TestNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := newTestStore(t, "a-"+uuid.NewString())
	b := newTestStore(t, "b-"+uuid.NewString())
	require.NoError(t, a.Init(ctx))
	require.NoError(t, b.Init(ctx))

	require.NoError(t, a.Write(ctx, store.KeyNumbersProgress, []byte(`{"currentDay":9}`)))

	_, err := b.Read(ctx, store.KeyNumbersProgress)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewPostgresKVStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresKVStore(nil, "x", nil) })
}

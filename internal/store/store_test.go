package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leomerlubo/wellflow/internal/db"
	"github.com/leomerlubo/wellflow/internal/store"
)

func newSQLiteStore(t *testing.T) *store.SQLite {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "wellflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	return store.NewSQLite(sqldb)
}

func stores(t *testing.T) map[string]store.Store {
	return map[string]store.Store{
		"sqlite": newSQLiteStore(t),
		"memory": store.NewMemory(),
	}
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, found, err := s.Get(store.KeyProfile)
			require.NoError(t, err)
			require.False(t, found)
			require.Nil(t, v)
		})
	}
}

func TestStorePutOverwrites(t *testing.T) {
	t.Parallel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(store.KeyLogs, []byte(`[]`)))
			require.NoError(t, s.Put(store.KeyLogs, []byte(`[{"id":"a"}]`)))

			v, found, err := s.Get(" LOGS ")
			require.NoError(t, err)
			require.True(t, found)
			require.JSONEq(t, `[{"id":"a"}]`, string(v))
		})
	}
}

func TestStorePutBatchAndDelete(t *testing.T) {
	t.Parallel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.PutBatch([]store.Record{
				{Key: store.KeyFastingLogs, Value: []byte(`[]`)},
				{Key: store.KeyFastingState, Value: []byte(`{"is_active":false,"started_at":null}`)},
			}))
			_, found, err := s.Get(store.KeyFastingState)
			require.NoError(t, err)
			require.True(t, found)

			require.NoError(t, s.Delete(store.KeyFastingState))
			_, found, err = s.Get(store.KeyFastingState)
			require.NoError(t, err)
			require.False(t, found)

			_, found, err = s.Get(store.KeyFastingLogs)
			require.NoError(t, err)
			require.True(t, found)
		})
	}
}

func TestStoreRejectsBlankKey(t *testing.T) {
	t.Parallel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.Error(t, s.Put("   ", []byte(`{}`)))
			err := s.PutBatch([]store.Record{
				{Key: store.KeyProfile, Value: []byte(`{}`)},
				{Key: "", Value: []byte(`{}`)},
			})
			require.Error(t, err)
			_, found, getErr := s.Get(store.KeyProfile)
			require.NoError(t, getErr)
			require.False(t, found, "failed batch must not write partial records")
		})
	}
}

func TestSQLiteList(t *testing.T) {
	t.Parallel()
	s := newSQLiteStore(t)
	require.NoError(t, s.Put(store.KeyLastReset, []byte(`"2026-01-01T00:00:00Z"`)))
	require.NoError(t, s.Put(store.KeyLogs, []byte(`[]`)))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, `[]`, string(all[store.KeyLogs]))
}

package service_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/leomerlubo/wellflow/internal/db"
	"github.com/leomerlubo/wellflow/internal/service"
	"github.com/leomerlubo/wellflow/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wellflow.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.NewSQLite(sqldb)
}

func newTestApp(t *testing.T, st store.Store, clock *fakeClock) *service.App {
	t.Helper()
	app, err := service.OpenApp(st,
		service.WithClock(clock.Now),
		service.WithIDGenerator(sequentialIDs()),
	)
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	return app
}

func localTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

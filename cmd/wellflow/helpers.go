package wellflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/app"
	"github.com/leomerlubo/wellflow/internal/db"
	logpkg "github.com/leomerlubo/wellflow/internal/pkg/log"
	"github.com/leomerlubo/wellflow/internal/service"
	"github.com/leomerlubo/wellflow/internal/store"
)

// withApp loads the app state from the local database for run.
func withApp(cmd *cobra.Command, run func(*service.App) error) error {
	return withStore(func(st store.Store) error {
		a, err := service.OpenApp(st, service.WithLogger(logpkg.From(commandContext(cmd))))
		if err != nil {
			return err
		}
		return run(a)
	})
}

// withStore opens the database and applies migrations. The store is closed
// when run returns.
func withStore(run func(store.Store) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(store.NewSQLite(sqldb))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func resolveBackupDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if cfg != nil && cfg.BackupDir != "" {
		return cfg.BackupDir, nil
	}
	path, err := resolveDBPath()
	if err != nil {
		return "", err
	}
	return app.DefaultBackupDir(path), nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func formatKcal(v float64) string {
	return fmt.Sprintf("%.0f kcal", v)
}

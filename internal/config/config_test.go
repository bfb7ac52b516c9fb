package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// isolate points EnvFile at a missing file and clears every WELLFLOW_ variable.
func isolate(t *testing.T) {
	t.Helper()
	old := EnvFile
	EnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { EnvFile = old })
	for _, k := range []string{
		"WELLFLOW_CONFIG", "WELLFLOW_DB", "WELLFLOW_BACKUP_DIR",
		"WELLFLOW_LOG_LEVEL", "WELLFLOW_LOG_FORMAT",
		"WELLFLOW_REFRESH", "WELLFLOW_BOUNDARY_CHECK",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

const sampleYAML = `
db_path: "/tmp/wellflow-test.db"
backup_dir: "/tmp/wellflow-backups"
log:
  level: "debug"
  format: "json"
clock:
  refresh: "2s"
  boundary_check: "30s"
`

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "", cfg.DBPath)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, time.Second, cfg.Clock.Refresh)
	require.Equal(t, time.Minute, cfg.Clock.BoundaryCheck)
}

func TestLoad_ExplicitYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "wellflow.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/wellflow-test.db", cfg.DBPath)
	require.Equal(t, "/tmp/wellflow-backups", cfg.BackupDir)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 2*time.Second, cfg.Clock.Refresh)
	require.Equal(t, 30*time.Second, cfg.Clock.BoundaryCheck)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "wellflow.yaml", sampleYAML)
	t.Setenv("WELLFLOW_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/wellflow-test.db", cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WELLFLOW_DB", "/data/w.db")
	t.Setenv("WELLFLOW_LOG_LEVEL", "INFO")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/data/w.db", cfg.DBPath)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolate(t)
	EnvFile = writeFile(t, t.TempDir(), ".env", "WELLFLOW_DB=/from/dotenv.db\n")
	t.Cleanup(func() { _ = os.Unsetenv("WELLFLOW_DB") })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/from/dotenv.db", cfg.DBPath)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	badLevel := writeFile(t, dir, "level.yaml", "log:\n  level: \"loud\"\n")
	_, err := Load(badLevel)
	require.Error(t, err)
	require.Contains(t, err.Error(), "log.level")

	badClock := writeFile(t, dir, "clock.yaml", "clock:\n  refresh: \"10s\"\n  boundary_check: \"5s\"\n")
	_, err = Load(badClock)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boundary_check")
}

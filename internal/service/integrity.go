package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/store"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	UnreadableRecords []string `json:"unreadable_records"`
	DuplicateLogIDs   int      `json:"duplicate_log_ids"`
	NegativeDurations int      `json:"negative_durations"`
	FixedRecords      []string `json:"fixed_records,omitempty"`
}

// Healthy reports whether the doctor found anything that --fix can repair.
func (r DoctorReport) Healthy() bool {
	return len(r.UnreadableRecords) == 0 && r.DuplicateLogIDs == 0
}

// RunDoctor inspects the stored records without going through the forgiving
// loader. With fix set, unreadable records are reset to their defaults and
// duplicate log ids are dropped, keeping the newest entry.
func RunDoctor(st store.Store, fix bool) (DoctorReport, error) {
	report := DoctorReport{UnreadableRecords: []string{}}
	checks := []struct {
		key    string
		decode func([]byte) error
		reset  func() any
	}{
		{store.KeyProfile, func(b []byte) error { _, err := decodeProfile(b); return err }, func() any { return DefaultProfile() }},
		{store.KeyLogs, func(b []byte) error { _, err := decodeLogs(b); return err }, func() any { return []model.LogEntry{} }},
		{store.KeyFastingLogs, func(b []byte) error { _, err := decodeFastingLogs(b); return err }, func() any { return []model.FastingSession{} }},
		{store.KeyFastingState, func(b []byte) error { _, err := decodeFastingState(b); return err }, func() any { return model.FastingState{} }},
		{store.KeyLastReset, func(b []byte) error { _, err := decodeLastReset(b); return err }, func() any { return time.Now() }},
	}

	fixes := make([]store.Record, 0)
	for _, c := range checks {
		raw, ok, err := st.Get(c.key)
		if err != nil {
			return report, fmt.Errorf("doctor read %s: %w", c.key, err)
		}
		if !ok {
			continue
		}
		if err := c.decode(raw); err == nil {
			continue
		}
		report.UnreadableRecords = append(report.UnreadableRecords, c.key)
		if fix {
			b, err := json.Marshal(c.reset())
			if err != nil {
				return report, fmt.Errorf("doctor encode default %s: %w", c.key, err)
			}
			fixes = append(fixes, store.Record{Key: c.key, Value: b})
			report.FixedRecords = append(report.FixedRecords, c.key)
		}
	}

	if raw, ok, err := st.Get(store.KeyLogs); err != nil {
		return report, fmt.Errorf("doctor read %s: %w", store.KeyLogs, err)
	} else if ok {
		if logs, err := decodeLogs(raw); err == nil {
			deduped := dedupeLogs(logs)
			report.DuplicateLogIDs = len(logs) - len(deduped)
			if fix && report.DuplicateLogIDs > 0 {
				b, err := json.Marshal(deduped)
				if err != nil {
					return report, fmt.Errorf("doctor encode %s: %w", store.KeyLogs, err)
				}
				fixes = append(fixes, store.Record{Key: store.KeyLogs, Value: b})
				report.FixedRecords = append(report.FixedRecords, store.KeyLogs)
			}
		}
	}

	if raw, ok, err := st.Get(store.KeyFastingLogs); err != nil {
		return report, fmt.Errorf("doctor read %s: %w", store.KeyFastingLogs, err)
	} else if ok {
		if history, err := decodeFastingLogs(raw); err == nil {
			for _, s := range history {
				if s.DurationMs < 0 {
					report.NegativeDurations++
				}
			}
		}
	}

	if len(fixes) > 0 {
		if err := st.PutBatch(fixes); err != nil {
			return report, fmt.Errorf("doctor fix: %w", err)
		}
	}
	return report, nil
}

func dedupeLogs(logs []model.LogEntry) []model.LogEntry {
	seen := make(map[string]struct{}, len(logs))
	out := make([]model.LogEntry, 0, len(logs))
	for _, e := range logs {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// BackupFileName is the default name for a backup taken at now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("wellflow-%s.json", now.Format("20060102-150405"))
}

// CreateBackup writes an export snapshot to outPath with a .sha256 sidecar.
func CreateBackup(app *App, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	b, err := MarshalExport(app.Export())
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when one exists and imports the
// snapshot, replacing every record it contains.
func RestoreBackup(app *App, backupPath string) (ImportReport, error) {
	if strings.TrimSpace(backupPath) == "" {
		return ImportReport{}, fmt.Errorf("backup path is required")
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return ImportReport{}, err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return ImportReport{}, fmt.Errorf("backup checksum mismatch")
		}
	}
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read backup: %w", err)
	}
	data, err := DecodeImport(raw)
	if err != nil {
		return ImportReport{}, err
	}
	return app.Import(data, ImportOptions{})
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

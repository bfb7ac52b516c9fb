package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/store"
)

// ExportData is the document written by export and read back by import.
type ExportData struct {
	ExportedAt   time.Time              `json:"exported_at"`
	Profile      model.UserProfile      `json:"profile"`
	Logs         []model.LogEntry       `json:"logs"`
	FastingLogs  []model.FastingSession `json:"fasting_logs"`
	FastingState model.FastingState     `json:"fasting_state"`
}

// ImportData keeps each record raw so a key absent from the document can be
// told apart from one that is present.
type ImportData struct {
	Profile      json.RawMessage `json:"profile"`
	Logs         json.RawMessage `json:"logs"`
	FastingLogs  json.RawMessage `json:"fasting_logs"`
	FastingState json.RawMessage `json:"fasting_state"`
}

type ImportOptions struct {
	DryRun bool
}

type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// ExportFileName is the default name for an export written at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("wellflow-export-%s.json", now.Format("20060102-150405"))
}

func (a *App) Export() *ExportData {
	return &ExportData{
		ExportedAt:   a.now(),
		Profile:      a.Profile(),
		Logs:         a.Logs(),
		FastingLogs:  a.FastingHistory(),
		FastingState: a.FastingState(),
	}
}

func MarshalExport(data *ExportData) ([]byte, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export json: %w", err)
	}
	return b, nil
}

func DecodeImport(raw []byte) (*ImportData, error) {
	var payload ImportData
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse import json: %w", err)
	}
	return &payload, nil
}

// Import overwrites every record present in data and then reloads all state.
// Records missing from data are left as they are. Nothing is written if any
// present record is invalid.
func (a *App) Import(data *ImportData, opts ImportOptions) (ImportReport, error) {
	if data == nil {
		return ImportReport{}, fmt.Errorf("import data is required")
	}
	report := ImportReport{}
	records := make([]store.Record, 0, 4)

	stage := func(key string, raw json.RawMessage, validate func([]byte) error) error {
		if !present(raw) {
			report.Skipped = append(report.Skipped, key)
			return nil
		}
		if err := validate(raw); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
		records = append(records, store.Record{Key: key, Value: compact(raw)})
		report.Imported = append(report.Imported, key)
		return nil
	}

	if err := stage(store.KeyProfile, data.Profile, func(b []byte) error {
		_, err := decodeProfile(b)
		return err
	}); err != nil {
		return ImportReport{}, err
	}
	if err := stage(store.KeyLogs, data.Logs, func(b []byte) error {
		_, err := decodeLogs(b)
		return err
	}); err != nil {
		return ImportReport{}, err
	}
	if err := stage(store.KeyFastingLogs, data.FastingLogs, func(b []byte) error {
		_, err := decodeFastingLogs(b)
		return err
	}); err != nil {
		return ImportReport{}, err
	}
	if err := stage(store.KeyFastingState, data.FastingState, func(b []byte) error {
		_, err := decodeFastingState(b)
		return err
	}); err != nil {
		return ImportReport{}, err
	}

	if opts.DryRun {
		return report, nil
	}
	if err := a.store.PutBatch(records); err != nil {
		return ImportReport{}, fmt.Errorf("write import: %w", err)
	}
	if err := a.Load(); err != nil {
		return ImportReport{}, fmt.Errorf("reload after import: %w", err)
	}
	a.logger.Info("import applied", slog.Any("imported", report.Imported), slog.Any("skipped", report.Skipped))
	return report, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

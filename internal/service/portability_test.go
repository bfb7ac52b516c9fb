package service_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/service"
	"github.com/leomerlubo/wellflow/internal/store"
)

func seedApp(t *testing.T, app *service.App, clock *fakeClock) {
	t.Helper()
	limit := 1900.0
	p := service.DefaultProfile()
	p.Name = "Grace"
	p.Gender = model.GenderFemale
	p.ManualDailyLimit = &limit
	if err := app.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := app.AddLog(service.LogInput{Kind: model.LogKindFood, Label: "Rice", Calories: 350}); err != nil {
		t.Fatalf("add log: %v", err)
	}
	if err := app.StartFast(clock.Now().Add(-16 * time.Hour)); err != nil {
		t.Fatalf("start fast: %v", err)
	}
	if _, err := app.EndFast(); err != nil {
		t.Fatalf("end fast: %v", err)
	}
	if err := app.StartFast(clock.Now()); err != nil {
		t.Fatalf("start second fast: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: localTime(2026, time.March, 10, 9, 0)}
	source := newTestApp(t, newTestStore(t), clock)
	seedApp(t, source, clock)

	exported := source.Export()
	raw, err := service.MarshalExport(exported)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	target := newTestApp(t, newTestStore(t), clock)
	data, err := service.DecodeImport(raw)
	if err != nil {
		t.Fatalf("decode import: %v", err)
	}
	report, err := target.Import(data, service.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(report.Imported) != 4 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	again := target.Export()
	again.ExportedAt = exported.ExportedAt
	left, _ := json.Marshal(exported)
	right, _ := json.Marshal(again)
	if string(left) != string(right) {
		t.Fatalf("round trip mismatch:\n%s\n%s", left, right)
	}
	if !reflect.DeepEqual(exported.Profile, again.Profile) {
		t.Fatalf("profile mismatch: %+v vs %+v", exported.Profile, again.Profile)
	}
}

func TestImportMissingKeysLeaveRecordsUnchanged(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: localTime(2026, time.March, 10, 9, 0)}
	app := newTestApp(t, store.NewMemory(), clock)
	seedApp(t, app, clock)

	data, err := service.DecodeImport([]byte(`{"logs":[],"fasting_state":null}`))
	if err != nil {
		t.Fatalf("decode import: %v", err)
	}
	report, err := app.Import(data, service.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(report.Imported) != 1 || report.Imported[0] != store.KeyLogs {
		t.Fatalf("expected only logs imported, got %+v", report)
	}
	if len(app.Logs()) != 0 {
		t.Fatalf("expected logs replaced by empty list")
	}
	if app.Profile().Name != "Grace" || len(app.FastingHistory()) != 1 || !app.FastingState().IsActive {
		t.Fatalf("expected other records untouched")
	}
}

func TestImportRejectsInvalidRecordWithoutWriting(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: localTime(2026, time.March, 10, 9, 0)}
	app := newTestApp(t, store.NewMemory(), clock)
	seedApp(t, app, clock)

	data, err := service.DecodeImport([]byte(`{"logs":[],"profile":{"name":"X","date_of_birth":"1990-01-01","height_cm":-5,"weight_kg":70,"gender":"male"}}`))
	if err != nil {
		t.Fatalf("decode import: %v", err)
	}
	_, err = app.Import(data, service.ImportOptions{})
	if err == nil || !strings.Contains(err.Error(), "import profile") {
		t.Fatalf("expected profile import error, got %v", err)
	}
	if len(app.Logs()) != 1 {
		t.Fatalf("expected logs untouched after failed import")
	}
}

func TestImportDryRun(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: localTime(2026, time.March, 10, 9, 0)}
	app := newTestApp(t, store.NewMemory(), clock)
	seedApp(t, app, clock)

	data, err := service.DecodeImport([]byte(`{"logs":[]}`))
	if err != nil {
		t.Fatalf("decode import: %v", err)
	}
	report, err := app.Import(data, service.ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry-run import: %v", err)
	}
	if len(report.Imported) != 1 || len(app.Logs()) != 1 {
		t.Fatalf("expected dry run to validate without writing, report=%+v", report)
	}
}

func TestDecodeImportRejectsMalformedJSON(t *testing.T) {
	t.Parallel()
	if _, err := service.DecodeImport([]byte(`{"logs":`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestExportFileName(t *testing.T) {
	t.Parallel()
	got := service.ExportFileName(localTime(2026, time.March, 10, 9, 5))
	if got != "wellflow-export-20260310-090500.json" {
		t.Fatalf("unexpected file name %q", got)
	}
}

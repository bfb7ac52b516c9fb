package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/service"
)

func TestSummarizeTodayTotals(t *testing.T) {
	t.Parallel()
	now := localTime(2026, time.March, 10, 18, 0)
	logs := []model.LogEntry{
		{ID: "a", Kind: model.LogKindActivity, Label: "Running", Calories: 200, OccurredAt: localTime(2026, time.March, 10, 17, 0), ActivityType: model.ActivityRunning},
		{ID: "b", Kind: model.LogKindFood, Label: "Pasta", Calories: 500, OccurredAt: localTime(2026, time.March, 10, 12, 0)},
		{ID: "c", Kind: model.LogKindFood, Label: "Yesterday", Calories: 900, OccurredAt: localTime(2026, time.March, 9, 20, 0)},
	}

	ledger := service.Summarize(logs, now, 2000)
	if len(ledger.Entries) != 2 {
		t.Fatalf("expected 2 entries for today, got %d", len(ledger.Entries))
	}
	if ledger.Entries[0].ID != "a" || ledger.Entries[1].ID != "b" {
		t.Fatalf("expected insertion order preserved, got %+v", ledger.Entries)
	}
	if ledger.Date != "2026-03-10" {
		t.Fatalf("expected date 2026-03-10, got %s", ledger.Date)
	}
	if ledger.Consumed() != 500 || ledger.Burned() != 200 || ledger.Net() != 300 || ledger.Remaining() != 1700 {
		t.Fatalf("unexpected totals: consumed=%v burned=%v net=%v remaining=%v", ledger.Consumed(), ledger.Burned(), ledger.Net(), ledger.Remaining())
	}
	if ledger.Percentage() != 15 {
		t.Fatalf("expected 15%%, got %v", ledger.Percentage())
	}
	if ledger.IsOverOrNearLimit() {
		t.Fatalf("did not expect near-limit warning")
	}
}

func TestLedgerPercentageUnclampedAndNearLimit(t *testing.T) {
	t.Parallel()
	now := localTime(2026, time.March, 10, 18, 0)
	logs := []model.LogEntry{
		{ID: "a", Kind: model.LogKindFood, Label: "Feast", Calories: 2500, OccurredAt: now},
	}
	ledger := service.Summarize(logs, now, 2000)
	if ledger.Percentage() != 125 {
		t.Fatalf("expected unclamped 125%%, got %v", ledger.Percentage())
	}
	if ledger.Remaining() != -500 || !ledger.IsOverOrNearLimit() {
		t.Fatalf("expected over-limit state, remaining=%v", ledger.Remaining())
	}

	near := service.Summarize([]model.LogEntry{
		{ID: "b", Kind: model.LogKindFood, Label: "Dinner", Calories: 1800, OccurredAt: now},
	}, now, 2000)
	if !near.IsOverOrNearLimit() {
		t.Fatalf("expected remaining 200 of 2000 to be near limit")
	}
	under := service.Summarize([]model.LogEntry{
		{ID: "c", Kind: model.LogKindFood, Label: "Dinner", Calories: 1799, OccurredAt: now},
	}, now, 2000)
	if under.IsOverOrNearLimit() {
		t.Fatalf("expected remaining 201 of 2000 to be fine")
	}
}

func TestLedgerZeroLimitGuard(t *testing.T) {
	t.Parallel()
	now := localTime(2026, time.March, 10, 18, 0)
	ledger := service.Summarize([]model.LogEntry{
		{ID: "a", Kind: model.LogKindFood, Label: "Snack", Calories: 50, OccurredAt: now},
	}, now, 0)
	if ledger.LimitValid() {
		t.Fatalf("expected zero limit to be invalid")
	}
	if ledger.Percentage() != 5000 {
		t.Fatalf("expected percentage against the 1 kcal floor, got %v", ledger.Percentage())
	}
	if ledger.Remaining() != -50 {
		t.Fatalf("expected remaining against raw limit, got %v", ledger.Remaining())
	}
}

func TestRemoveLogUnknownIDIsNoop(t *testing.T) {
	t.Parallel()
	logs := []model.LogEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out, removed := service.RemoveLog(logs, "zzz")
	if removed {
		t.Fatalf("expected no removal")
	}
	if len(out) != 3 || out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("expected collection unchanged, got %+v", out)
	}

	out, removed = service.RemoveLog(logs, "b")
	if !removed || len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("expected b removed, got %+v", out)
	}
	if len(logs) != 3 || logs[1].ID != "b" {
		t.Fatalf("expected input slice untouched, got %+v", logs)
	}
}

func TestNewLogEntryValidation(t *testing.T) {
	t.Parallel()
	now := localTime(2026, time.March, 10, 9, 0)

	_, err := service.NewLogEntry(service.LogInput{Kind: model.LogKindFood, Label: "Toast", Calories: -1}, "x", now)
	if err == nil || !strings.Contains(err.Error(), "calories must be >= 0") {
		t.Fatalf("expected negative calories error, got: %v", err)
	}
	_, err = service.NewLogEntry(service.LogInput{Kind: model.LogKindFood, Label: "  ", Calories: 10}, "x", now)
	if err == nil || !strings.Contains(err.Error(), "food name is required") {
		t.Fatalf("expected missing name error, got: %v", err)
	}
	_, err = service.NewLogEntry(service.LogInput{Kind: model.LogKindActivity, Calories: 10, ActivityType: "Swimming"}, "x", now)
	if err == nil || !strings.Contains(err.Error(), "invalid activity type") {
		t.Fatalf("expected invalid activity error, got: %v", err)
	}
	_, err = service.NewLogEntry(service.LogInput{Kind: "drink", Label: "Tea", Calories: 10}, "x", now)
	if err == nil || !strings.Contains(err.Error(), "invalid log kind") {
		t.Fatalf("expected invalid kind error, got: %v", err)
	}

	entry, err := service.NewLogEntry(service.LogInput{Kind: model.LogKindActivity, Calories: 150, ActivityType: "daily chores"}, "x", now)
	if err != nil {
		t.Fatalf("new activity entry: %v", err)
	}
	if entry.ActivityType != model.ActivityDailyChores || entry.Label != "Daily Chores" || !entry.OccurredAt.Equal(now) {
		t.Fatalf("unexpected activity entry: %+v", entry)
	}
}

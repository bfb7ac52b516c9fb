package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
)

const (
	// MinDailyLimit is the divisor used for Percentage when the limit is unusable.
	MinDailyLimit = 1.0
	// nearLimitFraction of the daily limit left triggers the near-limit warning.
	nearLimitFraction = 0.10
)

// DailyLedger holds one day's entries and the limit they are measured against.
// Every total is derived on access.
type DailyLedger struct {
	Date    string
	Limit   float64
	Entries []model.LogEntry
}

type LogInput struct {
	Kind         model.LogKind
	Label        string
	Calories     float64
	ActivityType model.ActivityType
}

// TodaysLogs keeps the entries that fall on now's local calendar day, in their
// original order.
func TodaysLogs(logs []model.LogEntry, now time.Time) []model.LogEntry {
	out := make([]model.LogEntry, 0)
	for _, e := range logs {
		if IsSameCalendarDay(e.OccurredAt, now) {
			out = append(out, e)
		}
	}
	return out
}

func Summarize(logs []model.LogEntry, now time.Time, dailyLimit float64) DailyLedger {
	return DailyLedger{
		Date:    beginningOfDay(now).Format(dateLayout),
		Limit:   dailyLimit,
		Entries: TodaysLogs(logs, now),
	}
}

func (l DailyLedger) Consumed() float64 {
	return l.sum(model.LogKindFood)
}

func (l DailyLedger) Burned() float64 {
	return l.sum(model.LogKindActivity)
}

func (l DailyLedger) Net() float64 {
	return l.Consumed() - l.Burned()
}

func (l DailyLedger) Remaining() float64 {
	return l.Limit - l.Net()
}

// Percentage is net over limit, unclamped. Callers rendering a bounded gauge
// clamp it themselves.
func (l DailyLedger) Percentage() float64 {
	limit := l.Limit
	if !l.LimitValid() {
		limit = MinDailyLimit
	}
	return l.Net() / limit * 100
}

func (l DailyLedger) LimitValid() bool {
	return l.Limit > 0
}

func (l DailyLedger) IsOverOrNearLimit() bool {
	remaining := l.Remaining()
	return remaining <= nearLimitFraction*l.Limit || remaining < 0
}

func (l DailyLedger) sum(kind model.LogKind) float64 {
	total := 0.0
	for _, e := range l.Entries {
		if e.Kind == kind {
			total += e.Calories
		}
	}
	return total
}

// NewLogEntry validates in and stamps it with id and now.
func NewLogEntry(in LogInput, id string, now time.Time) (model.LogEntry, error) {
	normalized, err := normalizeLogInput(in)
	if err != nil {
		return model.LogEntry{}, err
	}
	return model.LogEntry{
		ID:           id,
		Kind:         normalized.Kind,
		Label:        normalized.Label,
		Calories:     normalized.Calories,
		OccurredAt:   now,
		ActivityType: normalized.ActivityType,
	}, nil
}

// PrependLog returns a new slice with entry first.
func PrependLog(logs []model.LogEntry, entry model.LogEntry) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(logs)+1)
	out = append(out, entry)
	return append(out, logs...)
}

// RemoveLog drops the first entry with id. The input is returned untouched
// when nothing matches.
func RemoveLog(logs []model.LogEntry, id string) ([]model.LogEntry, bool) {
	for i, e := range logs {
		if e.ID != id {
			continue
		}
		out := make([]model.LogEntry, 0, len(logs)-1)
		out = append(out, logs[:i]...)
		return append(out, logs[i+1:]...), true
	}
	return logs, false
}

func normalizeLogInput(in LogInput) (LogInput, error) {
	if err := validateNonNegativeFloat("calories", in.Calories); err != nil {
		return LogInput{}, err
	}
	in.Label = strings.TrimSpace(in.Label)
	switch in.Kind {
	case model.LogKindFood:
		if in.Label == "" {
			return LogInput{}, fmt.Errorf("food name is required")
		}
		if in.ActivityType != "" {
			return LogInput{}, fmt.Errorf("activity type is only valid for activity entries")
		}
	case model.LogKindActivity:
		activity, err := ParseActivityType(string(in.ActivityType))
		if err != nil {
			return LogInput{}, err
		}
		in.ActivityType = activity
		if in.Label == "" {
			in.Label = string(activity)
		}
	default:
		return LogInput{}, fmt.Errorf("invalid log kind %q (use food or activity)", in.Kind)
	}
	return in, nil
}

// ParseActivityType matches value case-insensitively against the known activities.
func ParseActivityType(value string) (model.ActivityType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("activity type is required")
	}
	for _, a := range model.ActivityTypes {
		if strings.EqualFold(string(a), value) {
			return a, nil
		}
	}
	names := make([]string, 0, len(model.ActivityTypes))
	for _, a := range model.ActivityTypes {
		names = append(names, string(a))
	}
	return "", fmt.Errorf("invalid activity type %q (use one of: %s)", value, strings.Join(names, ", "))
}

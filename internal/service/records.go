package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
)

// Each decoder returns a typed value or an error describing why the raw record
// cannot be used. Callers fall back to the record's default on error.

func decodeProfile(raw []byte) (model.UserProfile, error) {
	var p model.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.UserProfile{}, err
	}
	// A zero manual limit was written by older builds to mean "unset".
	if p.ManualDailyLimit != nil && *p.ManualDailyLimit == 0 {
		p.ManualDailyLimit = nil
	}
	return NormalizeProfile(p)
}

func decodeLogs(raw []byte) ([]model.LogEntry, error) {
	var logs []model.LogEntry
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, err
	}
	for i, e := range logs {
		if e.ID == "" {
			return nil, fmt.Errorf("log %d: id is required", i)
		}
		if e.Kind != model.LogKindFood && e.Kind != model.LogKindActivity {
			return nil, fmt.Errorf("log %s: invalid kind %q", e.ID, e.Kind)
		}
		if err := validateNonNegativeFloat("calories", e.Calories); err != nil {
			return nil, fmt.Errorf("log %s: %w", e.ID, err)
		}
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	return logs, nil
}

func decodeFastingLogs(raw []byte) ([]model.FastingSession, error) {
	var history []model.FastingSession
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, err
	}
	for i, s := range history {
		if s.ID == "" {
			return nil, fmt.Errorf("fast %d: id is required", i)
		}
	}
	if history == nil {
		history = []model.FastingSession{}
	}
	return history, nil
}

func decodeFastingState(raw []byte) (model.FastingState, error) {
	var st model.FastingState
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.FastingState{}, err
	}
	if st.IsActive != (st.StartedAt != nil) {
		return model.FastingState{}, fmt.Errorf("is_active and started_at disagree")
	}
	return st, nil
}

func decodeLastReset(raw []byte) (time.Time, error) {
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

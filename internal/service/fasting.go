package service

import (
	"errors"
	"math"
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
)

const (
	// FastingGoalHours is the fixed target the progress percentage is measured against.
	FastingGoalHours = 16
	msPerHour        = float64(time.Hour / time.Millisecond)
)

var ErrFastAlreadyActive = errors.New("a fast is already active; end it before starting another")

type FastProgress struct {
	StartedAt    time.Time `json:"started_at"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	ElapsedHours float64   `json:"elapsed_hours"`
	Percentage   float64   `json:"percentage"`
	RemainingMs  int64     `json:"remaining_ms"`
	Stage        Stage     `json:"stage"`
}

type FastingStats struct {
	Count     int   `json:"count"`
	TotalMs   int64 `json:"total_ms"`
	LongestMs int64 `json:"longest_ms"`
	AverageMs int64 `json:"average_ms"`
}

// StartFast moves Idle to Active(at). at is not checked against the clock.
func StartFast(state model.FastingState, at time.Time) (model.FastingState, error) {
	if state.IsActive {
		return state, ErrFastAlreadyActive
	}
	started := at
	return model.FastingState{IsActive: true, StartedAt: &started}, nil
}

// EndFast moves Active to Idle and returns the completed session. Ending while
// idle returns the idle state and a nil session.
func EndFast(state model.FastingState, now time.Time, id string) (model.FastingState, *model.FastingSession) {
	idle := model.FastingState{}
	if !state.IsActive || state.StartedAt == nil {
		return idle, nil
	}
	started := *state.StartedAt
	return idle, &model.FastingSession{
		ID:         id,
		StartedAt:  started,
		EndedAt:    now,
		DurationMs: now.Sub(started).Milliseconds(),
	}
}

// Progress reports the readout for an active fast. ok is false when idle.
func Progress(state model.FastingState, now time.Time) (FastProgress, bool) {
	if !state.IsActive || state.StartedAt == nil {
		return FastProgress{}, false
	}
	elapsedMs := now.Sub(*state.StartedAt).Milliseconds()
	hours := float64(elapsedMs) / msPerHour
	remaining := int64(FastingGoalHours*time.Hour/time.Millisecond) - elapsedMs
	if remaining < 0 {
		remaining = 0
	}
	return FastProgress{
		StartedAt:    *state.StartedAt,
		ElapsedMs:    elapsedMs,
		ElapsedHours: hours,
		Percentage:   math.Min(100, hours/FastingGoalHours*100),
		RemainingMs:  remaining,
		Stage:        ClassifyStage(hours),
	}, true
}

// PrependSession returns history with session first.
func PrependSession(history []model.FastingSession, session model.FastingSession) []model.FastingSession {
	out := make([]model.FastingSession, 0, len(history)+1)
	out = append(out, session)
	return append(out, history...)
}

// RecentFasts returns at most n sessions from the head of history.
func RecentFasts(history []model.FastingSession, n int) []model.FastingSession {
	if n <= 0 || n >= len(history) {
		return history
	}
	return history[:n]
}

func SummarizeFasts(history []model.FastingSession) FastingStats {
	stats := FastingStats{Count: len(history)}
	for i, s := range history {
		stats.TotalMs += s.DurationMs
		if i == 0 || s.DurationMs > stats.LongestMs {
			stats.LongestMs = s.DurationMs
		}
	}
	if stats.Count > 0 {
		stats.AverageMs = stats.TotalMs / int64(stats.Count)
	}
	return stats
}

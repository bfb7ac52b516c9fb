package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type LogKind string

const (
	LogKindFood     LogKind = "food"
	LogKindActivity LogKind = "activity"
)

type ActivityType string

const (
	ActivityWalking     ActivityType = "Walking"
	ActivityRunning     ActivityType = "Running"
	ActivityBiking      ActivityType = "Biking"
	ActivityHIIT        ActivityType = "HIIT"
	ActivityDailyChores ActivityType = "Daily Chores"
	ActivityOthers      ActivityType = "Others"
)

// ActivityTypes lists the activity choices in display order.
var ActivityTypes = []ActivityType{
	ActivityWalking,
	ActivityRunning,
	ActivityBiking,
	ActivityHIIT,
	ActivityDailyChores,
	ActivityOthers,
}

type UserProfile struct {
	Name             string   `json:"name"`
	DateOfBirth      string   `json:"date_of_birth"`
	HeightCm         float64  `json:"height_cm"`
	WeightKg         float64  `json:"weight_kg"`
	Gender           Gender   `json:"gender"`
	Address          string   `json:"address"`
	ManualDailyLimit *float64 `json:"manual_daily_limit"`
}

type LogEntry struct {
	ID           string       `json:"id"`
	Kind         LogKind      `json:"kind"`
	Label        string       `json:"label"`
	Calories     float64      `json:"calories"`
	OccurredAt   time.Time    `json:"occurred_at"`
	ActivityType ActivityType `json:"activity_type,omitempty"`
}

type FastingSession struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMs int64     `json:"duration_ms"`
}

// FastingState is the single in-progress fast. StartedAt is set iff IsActive.
type FastingState struct {
	IsActive  bool       `json:"is_active"`
	StartedAt *time.Time `json:"started_at"`
}

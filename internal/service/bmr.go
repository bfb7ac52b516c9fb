package service

import (
	"time"

	"github.com/leomerlubo/wellflow/internal/model"
)

// ComputeBMR applies the Mifflin-St Jeor equation. Results are not clamped, so
// extreme inputs can produce zero or negative values.
func ComputeBMR(p model.UserProfile, asOf time.Time) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(ProfileAge(p, asOf))
	if p.Gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ProfileAge is the profile's age at asOf, or 0 when the birth date is unreadable.
func ProfileAge(p model.UserProfile, asOf time.Time) int {
	dob, err := parseDate(p.DateOfBirth)
	if err != nil {
		return 0
	}
	return Age(dob, asOf)
}

// EffectiveDailyLimit prefers the manual limit and falls back to BMR. A stored
// manual limit of zero or less counts as unset.
func EffectiveDailyLimit(p model.UserProfile, asOf time.Time) float64 {
	if p.ManualDailyLimit != nil && *p.ManualDailyLimit > 0 {
		return *p.ManualDailyLimit
	}
	return ComputeBMR(p, asOf)
}

package service

import (
	"fmt"
	"strings"

	"github.com/leomerlubo/wellflow/internal/model"
)

// DefaultProfile is used until the user saves their own.
func DefaultProfile() model.UserProfile {
	return model.UserProfile{
		Name:        "New User",
		DateOfBirth: "1990-01-01",
		HeightCm:    175,
		WeightKg:    70,
		Gender:      model.GenderMale,
		Address:     "",
	}
}

// NormalizeProfile trims text fields and enforces the profile invariants.
func NormalizeProfile(p model.UserProfile) (model.UserProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	if p.Name == "" {
		return model.UserProfile{}, fmt.Errorf("name is required")
	}
	if _, err := parseDate(p.DateOfBirth); err != nil {
		return model.UserProfile{}, fmt.Errorf("date of birth: %w", err)
	}
	if err := validatePositiveFloat("height", p.HeightCm); err != nil {
		return model.UserProfile{}, err
	}
	if err := validatePositiveFloat("weight", p.WeightKg); err != nil {
		return model.UserProfile{}, err
	}
	gender, err := ParseGender(string(p.Gender))
	if err != nil {
		return model.UserProfile{}, err
	}
	p.Gender = gender
	if p.ManualDailyLimit != nil {
		if err := validatePositiveFloat("daily limit", *p.ManualDailyLimit); err != nil {
			return model.UserProfile{}, err
		}
		limit := *p.ManualDailyLimit
		p.ManualDailyLimit = &limit
	}
	return p, nil
}

func ParseGender(value string) (model.Gender, error) {
	switch model.Gender(strings.ToLower(strings.TrimSpace(value))) {
	case model.GenderMale:
		return model.GenderMale, nil
	case model.GenderFemale:
		return model.GenderFemale, nil
	default:
		return "", fmt.Errorf("invalid gender %q (use male or female)", value)
	}
}

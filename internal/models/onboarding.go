package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateMode selects which anchor date the user supplies during onboarding.
type DateMode string

const (
	DateModeLMP     DateMode = "lmp"
	DateModeDueDate DateMode = "due_date"
)

// Label is the short form shown on the mode toggle.
func (m DateMode) Label() string {
	if m == DateModeDueDate {
		return "Due Date"
	}
	return "LMP"
}

// Prompt is the question shown above the date input.
func (m DateMode) Prompt() string {
	if m == DateModeDueDate {
		return "Your Due Date:"
	}
	return "First day of last period:"
}

// Toggle flips between the two modes.
func (m DateMode) Toggle() DateMode {
	if m == DateModeDueDate {
		return DateModeLMP
	}
	return DateModeDueDate
}

// Onboarding validation errors.
var (
	ErrMissingName     = errors.New("name is required")
	ErrMissingDate     = errors.New("date is required")
	ErrLMPInFuture     = errors.New("last period cannot be in the future")
	ErrDueDateTooEarly = errors.New("due date is more than two weeks past")
	ErrInvalidDateMode = errors.New("date mode must be lmp or due_date")
)

// OnboardingRequest is the profile submitted to start a journey.
type OnboardingRequest struct {
	Name             string
	IsFirstPregnancy bool
	HighRiskFactors  string
	Mode             DateMode
	Date             time.Time
}

// Validate checks the request against the given day.
func (r OnboardingRequest) Validate(today time.Time) error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(r.Name) == "" {
		validation.Add("name", ErrMissingName)
	}
	switch r.Mode {
	case DateModeLMP, DateModeDueDate:
	default:
		validation.Add("mode", ErrInvalidDateMode)
	}
	if r.Date.IsZero() {
		validation.Add("date", ErrMissingDate)
		return validation.Err()
	}

	day := civilDate(today)
	switch r.Mode {
	case DateModeLMP:
		if civilDate(r.Date).After(day) {
			validation.Add("date", ErrLMPInFuture)
		}
	case DateModeDueDate:
		if GestationalAgeAt(r.Date, day).Weeks > FullTermWeeks+2 {
			validation.Add("date", ErrDueDateTooEarly)
		}
	}
	return validation.Err()
}

// DueDate resolves the due date regardless of mode.
func (r OnboardingRequest) DueDate() time.Time {
	if r.Mode == DateModeLMP {
		return DueDateFromLMP(r.Date)
	}
	return civilDate(r.Date)
}

// MarshalJSON emits the backend payload; only the field selected by Mode
// carries the date.
func (r OnboardingRequest) MarshalJSON() ([]byte, error) {
	payload := map[string]any{
		"name":               strings.TrimSpace(r.Name),
		"is_first_pregnancy": r.IsFirstPregnancy,
		"high_risk_factors":  strings.TrimSpace(r.HighRiskFactors),
	}
	date := r.Date.Format(DateLayout)
	switch r.Mode {
	case DateModeLMP:
		payload["last_menstrual_period"] = date
	case DateModeDueDate:
		payload["due_date"] = date
	default:
		return nil, fmt.Errorf("marshal onboarding: %w", ErrInvalidDateMode)
	}
	return json.Marshal(payload)
}

// OnboardingResult is returned once the backend has created the profile.
type OnboardingResult struct {
	UserID      int    `json:"user_id"`
	DueDate     string `json:"due_date"`
	CurrentWeek int    `json:"current_week"`
	CurrentDay  int    `json:"current_day"`
	Message     string `json:"message"`
}

// Validate checks the fields the client depends on.
func (r OnboardingResult) Validate() error {
	validation := &ValidationErrors{}
	if r.UserID <= 0 {
		validation.AddMessage("user_id", "must be positive")
	}
	if r.DueDate != "" {
		if _, err := ParseDate(r.DueDate); err != nil {
			validation.Add("due_date", err)
		}
	}
	return validation.Err()
}

package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOnboardingRequestMarshalLMP(t *testing.T) {
	req := OnboardingRequest{
		Name:             " Dana ",
		IsFirstPregnancy: true,
		HighRiskFactors:  "Twins",
		Mode:             DateModeLMP,
		Date:             time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "Dana", payload["name"])
	require.Equal(t, true, payload["is_first_pregnancy"])
	require.Equal(t, "Twins", payload["high_risk_factors"])
	require.Equal(t, "2026-05-01", payload["last_menstrual_period"])
	require.NotContains(t, payload, "due_date")
}

func TestOnboardingRequestMarshalDueDate(t *testing.T) {
	req := OnboardingRequest{Name: "Dana", Mode: DateModeDueDate, Date: time.Date(2027, 1, 20, 0, 0, 0, 0, time.UTC)}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"due_date":"2027-01-20"`)
	require.NotContains(t, string(raw), "last_menstrual_period")
}

func TestOnboardingRequestValidate(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	err := OnboardingRequest{Mode: DateModeLMP, Date: today}.Validate(today)
	require.True(t, errors.Is(err, ErrMissingName))

	err = OnboardingRequest{Name: "Dana", Mode: DateModeLMP, Date: today.AddDate(0, 0, 3)}.Validate(today)
	require.True(t, errors.Is(err, ErrLMPInFuture))

	err = OnboardingRequest{Name: "Dana", Mode: DateModeDueDate, Date: today.AddDate(0, -2, 0)}.Validate(today)
	require.True(t, errors.Is(err, ErrDueDateTooEarly))

	err = OnboardingRequest{Name: "Dana", Mode: "weeks", Date: today}.Validate(today)
	require.True(t, errors.Is(err, ErrInvalidDateMode))

	require.NoError(t, OnboardingRequest{Name: "Dana", Mode: DateModeDueDate, Date: today.AddDate(0, 4, 0)}.Validate(today))
}

func TestOnboardingRequestDueDate(t *testing.T) {
	lmp := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, 10, 8, 0, 0, 0, 0, time.UTC), OnboardingRequest{Mode: DateModeLMP, Date: lmp}.DueDate())
	require.Equal(t, lmp, OnboardingRequest{Mode: DateModeDueDate, Date: lmp}.DueDate())
}

func TestDateModeToggle(t *testing.T) {
	require.Equal(t, DateModeDueDate, DateModeLMP.Toggle())
	require.Equal(t, DateModeLMP, DateModeDueDate.Toggle())
	require.Equal(t, "Your Due Date:", DateModeDueDate.Prompt())
}

func TestProfileFromOnboardingPrefersBackendDueDate(t *testing.T) {
	req := OnboardingRequest{Name: "Dana", Mode: DateModeLMP, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	profile := ProfileFromOnboarding(req, OnboardingResult{UserID: 7, DueDate: "2026-10-09"})
	require.Equal(t, 7, profile.UserID)
	require.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), profile.DueDate)

	profile = ProfileFromOnboarding(req, OnboardingResult{UserID: 7, DueDate: "not-a-date"})
	require.Equal(t, DueDateFromLMP(req.Date), profile.DueDate)
	require.Equal(t, 40, profile.CurrentWeek(profile.DueDate))
}

package models

import "time"

// Profile is the locally remembered result of onboarding.
type Profile struct {
	UserID           int       `json:"user_id"`
	Name             string    `json:"name"`
	DueDate          time.Time `json:"due_date"`
	IsFirstPregnancy bool      `json:"is_first_pregnancy"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProfileFromOnboarding combines the submitted request with the backend result.
// The backend due date wins when it parses; otherwise the local calculation is used.
func ProfileFromOnboarding(req OnboardingRequest, res OnboardingResult) Profile {
	due := req.DueDate()
	if parsed, err := ParseDate(res.DueDate); err == nil {
		due = parsed
	}
	return Profile{
		UserID:           res.UserID,
		Name:             req.Name,
		DueDate:          due,
		IsFirstPregnancy: req.IsFirstPregnancy,
		CreatedAt:        time.Now().UTC(),
	}
}

// CurrentWeek returns the gestational week on day today.
func (p Profile) CurrentWeek(today time.Time) int {
	age := GestationalAgeAt(p.DueDate, today)
	if age.Weeks < 0 {
		return 0
	}
	return age.Weeks
}

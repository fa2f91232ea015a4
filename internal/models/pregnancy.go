package models

import "time"

const (
	// PregnancyDays is the standard term counted from the last menstrual period.
	PregnancyDays = 280

	// FullTermWeeks is PregnancyDays expressed in weeks.
	FullTermWeeks = PregnancyDays / 7

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// GestationalAge is the time elapsed since the last menstrual period.
type GestationalAge struct {
	Weeks     int `json:"weeks"`
	Days      int `json:"days"`
	TotalDays int `json:"total_days"`
}

// DueDateFromLMP applies Naegele's rule: LMP + 280 days.
func DueDateFromLMP(lmp time.Time) time.Time {
	return civilDate(lmp).AddDate(0, 0, PregnancyDays)
}

// LMPFromDueDate is the inverse of DueDateFromLMP.
func LMPFromDueDate(due time.Time) time.Time {
	return civilDate(due).AddDate(0, 0, -PregnancyDays)
}

// GestationalAgeAt computes the gestational age on day today for a pregnancy
// due on due. Days before the LMP yield a negative total.
func GestationalAgeAt(due, today time.Time) GestationalAge {
	start := LMPFromDueDate(due)
	total := daysBetween(start, civilDate(today))
	weeks := floorDiv(total, 7)
	return GestationalAge{
		Weeks:     weeks,
		Days:      total - weeks*7,
		TotalDays: total,
	}
}

// Trimester returns 1, 2 or 3 for a gestational week.
func Trimester(week int) int {
	switch {
	case week < 14:
		return 1
	case week < 28:
		return 2
	default:
		return 3
	}
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

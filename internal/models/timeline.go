package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category groups timeline events by kind of milestone.
// The set is open: unknown values are carried through untouched.
type Category string

const (
	CategoryMedical   Category = "Medical"
	CategoryTest      Category = "Test"
	CategoryVaccine   Category = "Vaccine"
	CategoryLifestyle Category = "Lifestyle"
)

// KnownCategories lists the categories with a dedicated accent.
var KnownCategories = []Category{
	CategoryMedical,
	CategoryTest,
	CategoryVaccine,
	CategoryLifestyle,
}

// Known reports whether c is one of KnownCategories.
func (c Category) Known() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Status places an event relative to the current gestational week.
type Status int

const (
	StatusFuture Status = iota
	StatusCurrent
	StatusPast
)

func (s Status) String() string {
	switch s {
	case StatusPast:
		return "past"
	case StatusCurrent:
		return "current"
	default:
		return "future"
	}
}

// Classify maps a week against the inclusive range [weekStart, weekEnd].
func Classify(currentWeek, weekStart, weekEnd int) Status {
	switch {
	case currentWeek > weekEnd:
		return StatusPast
	case currentWeek < weekStart:
		return StatusFuture
	default:
		return StatusCurrent
	}
}

// Timeline validation errors.
var (
	ErrInvalidEventID    = errors.New("event id must be positive")
	ErrInvalidWeekRange  = errors.New("week_start must not exceed week_end")
	ErrMissingEventTitle = errors.New("title is required")
	ErrDuplicateEventID  = errors.New("duplicate event id")
)

// TimelineEvent is a single milestone tied to a gestational week range.
type TimelineEvent struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	WeekStart    int      `json:"week_start"`
	WeekEnd      int      `json:"week_end"`
	IsCompleted  bool     `json:"is_completed"`
	Category     Category `json:"category"`
	Details      string   `json:"details,omitempty"`
	NormalValues string   `json:"normal_values,omitempty"`
}

// StatusAt classifies the event for the given week.
func (e TimelineEvent) StatusAt(week int) Status {
	return Classify(week, e.WeekStart, e.WeekEnd)
}

// HasDetails reports whether the event carries expandable text.
func (e TimelineEvent) HasDetails() bool {
	return strings.TrimSpace(e.Details) != "" || strings.TrimSpace(e.NormalValues) != ""
}

// Validate checks the event invariants.
func (e TimelineEvent) Validate() error {
	validation := &ValidationErrors{}
	if e.ID <= 0 {
		validation.Add("id", ErrInvalidEventID)
	}
	if strings.TrimSpace(e.Title) == "" {
		validation.Add("title", ErrMissingEventTitle)
	}
	if e.WeekStart > e.WeekEnd {
		validation.Add("week_start", ErrInvalidWeekRange)
	}
	return validation.Err()
}

// ValidateTimeline checks every event and that ids are unique.
func ValidateTimeline(events []TimelineEvent) error {
	validation := &ValidationErrors{}
	seen := make(map[int]struct{}, len(events))
	for i, event := range events {
		if err := event.Validate(); err != nil {
			validation.AddAt("events", i, "", err)
			continue
		}
		if _, dup := seen[event.ID]; dup {
			validation.AddAt("events", i, "id", fmt.Errorf("%w %d", ErrDuplicateEventID, event.ID))
			continue
		}
		seen[event.ID] = struct{}{}
	}
	return validation.Err()
}

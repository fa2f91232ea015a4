package doulatui

import "github.com/tOgg1/doula/internal/models"

// eventStore holds the fetched timeline in received order plus the single
// expanded event and the keyboard cursor.
type eventStore struct {
	events     []models.TimelineEvent
	expandedID int // 0 means nothing is expanded; event ids are positive
	selected   int
}

// setEvents replaces the sequence wholesale. No merge, no sorting.
func (s *eventStore) setEvents(events []models.TimelineEvent) {
	s.events = append([]models.TimelineEvent(nil), events...)
	s.selected = clampInt(s.selected, 0, maxInt(0, len(s.events)-1))
}

// toggleExpanded collapses id if it is expanded, otherwise expands it
// (collapsing whatever was open).
func (s *eventStore) toggleExpanded(id int) {
	if s.expandedID == id {
		s.expandedID = 0
		return
	}
	s.expandedID = id
}

func (s *eventStore) list() []models.TimelineEvent {
	return append([]models.TimelineEvent(nil), s.events...)
}

func (s *eventStore) expanded(id int) bool {
	return id != 0 && s.expandedID == id
}

func (s *eventStore) len() int {
	return len(s.events)
}

func (s *eventStore) move(delta int) {
	if len(s.events) == 0 {
		s.selected = 0
		return
	}
	s.selected = clampInt(s.selected+delta, 0, len(s.events)-1)
}

func (s *eventStore) selectedEvent() (models.TimelineEvent, bool) {
	if s.selected < 0 || s.selected >= len(s.events) {
		return models.TimelineEvent{}, false
	}
	return s.events[s.selected], true
}

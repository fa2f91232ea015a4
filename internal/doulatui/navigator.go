package doulatui

import "github.com/tOgg1/doula/internal/models"

// timelinePhase is the fetch state of the timeline screen. Every phase has
// exactly one rendering.
type timelinePhase int

const (
	phaseLoading timelinePhase = iota
	phaseFailed
	phaseEmpty
	phaseReady
)

func (p timelinePhase) String() string {
	switch p {
	case phaseLoading:
		return "loading"
	case phaseFailed:
		return "failed"
	case phaseEmpty:
		return "empty"
	case phaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// panelViews are the screens reachable from the timeline.
var panelViews = map[ViewID]bool{
	ViewChat:    true,
	ViewWeekly:  true,
	ViewPartner: true,
	ViewGoBag:   true,
}

// navigator owns the timeline screen state: which panel is active, the
// fetched events and the fetch status.
//
// Transitions: timeline -> panel via open, panel -> timeline via back.
// Both are rejected while a fetch is in flight.
type navigator struct {
	active  ViewID
	store   eventStore
	loading bool
	lastErr error
}

func newNavigator() *navigator {
	return &navigator{active: ViewTimeline}
}

func (n *navigator) open(id ViewID) bool {
	if n.loading || n.active != ViewTimeline || !panelViews[id] {
		return false
	}
	n.active = id
	return true
}

func (n *navigator) back() bool {
	if n.loading || n.active == ViewTimeline {
		return false
	}
	n.active = ViewTimeline
	return true
}

func (n *navigator) beginLoad() {
	n.loading = true
	n.lastErr = nil
}

func (n *navigator) finishLoad(events []models.TimelineEvent, err error) {
	n.loading = false
	n.lastErr = err
	if err != nil {
		n.store.setEvents(nil)
		return
	}
	n.store.setEvents(events)
}

func (n *navigator) phase() timelinePhase {
	switch {
	case n.loading:
		return phaseLoading
	case n.lastErr != nil:
		return phaseFailed
	case n.store.len() == 0:
		return phaseEmpty
	default:
		return phaseReady
	}
}

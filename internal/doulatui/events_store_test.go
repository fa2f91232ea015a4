package doulatui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventStoreSetEventsPreservesOrder(t *testing.T) {
	var store eventStore
	events := sampleEvents()
	store.setEvents(events)

	got := store.list()
	require.Equal(t, events, got)

	// list returns a copy.
	got[0].Title = "changed"
	require.Equal(t, "Anatomy Scan", store.list()[0].Title)
}

func TestEventStoreToggleTwiceIsIdentity(t *testing.T) {
	for _, initial := range []int{0, 1, 3, 8} {
		for _, id := range []int{1, 3, 8} {
			store := eventStore{expandedID: initial}
			store.setEvents(sampleEvents())
			store.toggleExpanded(id)
			store.toggleExpanded(id)
			require.Equal(t, initial, store.expandedID, "initial=%d id=%d", initial, id)
		}
	}
}

func TestEventStoreAtMostOneExpanded(t *testing.T) {
	var store eventStore
	store.setEvents(sampleEvents())

	store.toggleExpanded(3)
	require.True(t, store.expanded(3))
	store.toggleExpanded(8)
	require.True(t, store.expanded(8))
	require.False(t, store.expanded(3))

	store.toggleExpanded(8)
	for _, event := range store.list() {
		require.False(t, store.expanded(event.ID))
	}
}

func TestEventStoreCursorClamps(t *testing.T) {
	var store eventStore
	store.move(1)
	require.Equal(t, 0, store.selected)
	_, ok := store.selectedEvent()
	require.False(t, ok)

	store.setEvents(sampleEvents())
	store.move(10)
	require.Equal(t, 2, store.selected)
	event, ok := store.selectedEvent()
	require.True(t, ok)
	require.Equal(t, 8, event.ID)

	store.setEvents(sampleEvents()[:1])
	require.Equal(t, 0, store.selected)
	store.move(-5)
	require.Equal(t, 0, store.selected)
}

package doulatui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/doula/internal/models"
)

func TestNavigatorTransitions(t *testing.T) {
	nav := newNavigator()
	require.Equal(t, ViewTimeline, nav.active)

	require.False(t, nav.back(), "back from timeline")
	require.False(t, nav.open(ViewTimeline))
	require.False(t, nav.open(ViewOnboarding))

	for id := range panelViews {
		require.True(t, nav.open(id))
		require.Equal(t, id, nav.active)
		for other := range panelViews {
			require.False(t, nav.open(other), "%s -> %s", id, other)
		}
		require.True(t, nav.back())
		require.Equal(t, ViewTimeline, nav.active)
	}
}

func TestNavigatorRejectsWhileLoading(t *testing.T) {
	nav := newNavigator()
	nav.beginLoad()
	require.False(t, nav.open(ViewChat))
	require.Equal(t, ViewTimeline, nav.active)

	nav.finishLoad(nil, nil)
	require.True(t, nav.open(ViewChat))
	nav.loading = true
	require.False(t, nav.back())
	require.Equal(t, ViewChat, nav.active)
}

func TestNavigatorPhases(t *testing.T) {
	nav := newNavigator()
	require.Equal(t, phaseEmpty, nav.phase())

	nav.beginLoad()
	require.Equal(t, phaseLoading, nav.phase())

	nav.finishLoad(sampleEvents(), nil)
	require.Equal(t, phaseReady, nav.phase())

	nav.beginLoad()
	nav.finishLoad(sampleEvents(), errors.New("boom"))
	require.Equal(t, phaseFailed, nav.phase())
	require.Zero(t, nav.store.len())

	nav.beginLoad()
	require.Nil(t, nav.lastErr)
	nav.finishLoad([]models.TimelineEvent{}, nil)
	require.Equal(t, phaseEmpty, nav.phase())
}

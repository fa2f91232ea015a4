package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeeklyContentForClampsWeeks(t *testing.T) {
	early := WeeklyContentFor(2)
	require.Equal(t, 2, early.Week)
	require.Equal(t, "Poppy Seed", early.Size)

	late := WeeklyContentFor(45)
	require.Equal(t, "Jackfruit", late.Size)

	mid := WeeklyContentFor(14)
	require.Equal(t, "Lemon", mid.Size)
	require.Equal(t, "Fingerprints are forming.", mid.BabyDevelopment)
	require.Contains(t, mid.MomBody, "second trimester")
}

func TestWeeklyContentEveryWeekHasSize(t *testing.T) {
	for week := firstContentWeek; week <= lastContentWeek; week++ {
		content := WeeklyContentFor(week)
		require.NotEmpty(t, content.Size, "week %d", week)
		require.NotEmpty(t, content.Checklist)
	}
}

func TestWeeklyChecklistAddsGoBagReminder(t *testing.T) {
	require.Contains(t, WeeklyContentFor(33).Checklist, "Pack your hospital bag.")
	require.NotContains(t, WeeklyContentFor(20).Checklist, "Pack your hospital bag.")
}

func TestOrderGoBagGroupsByCategory(t *testing.T) {
	items := []GoBagItem{
		{ID: 9, Category: "Baby", Text: "Blanket"},
		{ID: 10, Category: "Extras", Text: "Pillow"},
		{ID: 1, Category: "Essentials", Text: "ID"},
		{ID: 4, Category: "Comfort", Text: "Robe"},
	}
	ordered := OrderGoBag(items)
	ids := make([]int, 0, len(ordered))
	for _, item := range ordered {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []int{1, 4, 9, 10}, ids)
}

func TestDefaultGoBagUnchecked(t *testing.T) {
	items := DefaultGoBag()
	require.Len(t, items, 9)
	for _, item := range items {
		require.False(t, item.Checked)
	}
}

package styles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/doula/internal/models"
)

func TestCategoryColorKnownCategories(t *testing.T) {
	theme := DefaultTheme
	require.Equal(t, "#FF6584", CategoryColor(theme, models.CategoryMedical))
	require.Equal(t, "#4DB6AC", CategoryColor(theme, models.CategoryTest))
	require.Equal(t, "#FFD54F", CategoryColor(theme, models.CategoryVaccine))
	require.Equal(t, "#9575CD", CategoryColor(theme, models.CategoryLifestyle))
}

func TestCategoryColorFallsBackToNeutral(t *testing.T) {
	for _, theme := range Themes {
		require.Equal(t, theme.Category.Unknown, CategoryColor(theme, ""))
		require.Equal(t, theme.Category.Unknown, CategoryColor(theme, "Nutrition"))
		require.Equal(t, theme.Category.Unknown, CategoryColor(theme, "medical"), "match is case-sensitive")
	}
}

func TestEveryThemeDefinesAllAccents(t *testing.T) {
	for name, theme := range Themes {
		require.Equal(t, name, theme.Name)
		for _, category := range models.KnownCategories {
			require.NotEmpty(t, CategoryColor(theme, category), "%s/%s", name, category)
		}
		for _, status := range []models.Status{models.StatusFuture, models.StatusCurrent, models.StatusPast} {
			require.NotEmpty(t, StatusColor(theme, status), "%s/%s", name, status)
		}
	}
}

func TestStatusColor(t *testing.T) {
	theme := DefaultTheme
	require.Equal(t, "#6C63FF", StatusColor(theme, models.StatusCurrent))
	require.Equal(t, "#4CAF50", StatusColor(theme, models.StatusPast))
	require.Equal(t, "#CCCCCC", StatusColor(theme, models.StatusFuture))
}

func TestLookupFallsBack(t *testing.T) {
	require.Equal(t, "high-contrast", Lookup("high-contrast").Name)
	require.Equal(t, "default", Lookup("matrix").Name)
}

func TestBadgesContainLabels(t *testing.T) {
	require.Contains(t, CategoryBadge(DefaultTheme, models.CategoryVaccine), "Vaccine")
	require.Contains(t, CategoryBadge(DefaultTheme, ""), "Other")
	require.Contains(t, CurrentTag(DefaultTheme), "HAPPENING NOW")
}

func TestContentWidth(t *testing.T) {
	require.Equal(t, 0, ContentWidth(0))
	require.Equal(t, 38, ContentWidth(40))
	require.Equal(t, MaxContentWidth, ContentWidth(300))
}

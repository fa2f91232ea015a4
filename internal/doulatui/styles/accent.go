package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/doula/internal/models"
)

// CategoryColor maps an event category to its accent. Unknown or empty
// categories get the neutral Unknown color.
func CategoryColor(theme Theme, category models.Category) string {
	switch category {
	case models.CategoryMedical:
		return theme.Category.Medical
	case models.CategoryTest:
		return theme.Category.Test
	case models.CategoryVaccine:
		return theme.Category.Vaccine
	case models.CategoryLifestyle:
		return theme.Category.Lifestyle
	default:
		return theme.Category.Unknown
	}
}

// StatusColor maps a timeline status to its accent.
func StatusColor(theme Theme, status models.Status) string {
	switch status {
	case models.StatusCurrent:
		return theme.Status.Current
	case models.StatusPast:
		return theme.Status.Past
	default:
		return theme.Status.Future
	}
}

// CategoryBadge renders the category label in its accent.
func CategoryBadge(theme Theme, category models.Category) string {
	label := string(category)
	if label == "" {
		label = "Other"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CategoryColor(theme, category))).
		Bold(true).
		Render(label)
}

// StatusMarker renders the gutter bar for an event row.
func StatusMarker(theme Theme, status models.Status) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(theme, status))).Render("▌")
}

// CurrentTag renders the marker attached to events happening this week.
func CurrentTag(theme Theme) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Base.Background)).
		Background(lipgloss.Color(theme.Status.Current)).
		Bold(true).
		Padding(0, 1).
		Render("HAPPENING NOW")
}

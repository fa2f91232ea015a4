package doulatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/doula/internal/models"
)

var viewTitles = map[ViewID]string{
	ViewOnboarding: "Digital Doula Setup",
	ViewTimeline:   "Timeline",
	ViewChat:       "Ask AI",
	ViewWeekly:     "This Week",
	ViewPartner:    "Partner",
	ViewGoBag:      "Hospital Bag",
}

func (m *Model) renderHeader() string {
	palette := themePalette(m.theme)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	left := "Digital Doula"
	center := ""
	if m.profile != nil {
		week := m.currentWeek()
		center = fmt.Sprintf("%s · week %d · trimester %d", m.profile.Name, week, models.Trimester(week))
	}
	right := viewTitles[m.activeViewID()]
	line := joinHeader(left, center, right, maxInt(0, m.width-2))
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	palette := themePalette(m.theme)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Footer)).
		Padding(0, 1)

	var base string
	switch m.activeViewID() {
	case ViewOnboarding:
		base = "tab next field  space toggle  enter submit  ctrl+c quit"
	case ViewTimeline:
		base = "[C]hat [W]eekly [P]artner [B]ag  j/k move  enter details  ? help  q quit"
		if m.nav != nil && m.nav.phase() == phaseFailed {
			base = "r retry  ? help  q quit"
		}
	case ViewChat:
		base = "enter send  esc back  ctrl+c quit"
	case ViewGoBag:
		base = "j/k move  space pack  esc back  q quit"
	default:
		base = "esc back  ? help  q quit"
	}
	return style.Width(maxInt(0, m.width)).Render(truncateVis(base, maxInt(0, m.width-2)))
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if right != "" {
			line = left + "  " + right
		}
		return truncateVis(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return truncateVis(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

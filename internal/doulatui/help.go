package doulatui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

func (m *Model) renderHelpOverlay(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)

	sections := helpForView(m.activeViewID())
	lines := make([]string, 0, 32)
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render("Help")
	lines = append(lines, head, "")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Base.Accent))
	for _, sec := range sections {
		if strings.TrimSpace(sec.title) != "" {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Render(sec.title))
		}
		for _, it := range sec.items {
			lines = append(lines, "  "+keyStyle.Render(it.key)+"  "+it.desc)
		}
		lines = append(lines, "")
	}

	lines = append(lines, palette.MutedStyle().Render("Dismiss: ? or Esc"))
	content := strings.Join(lines, "\n")

	panelWidth := minInt(maxInt(40, width-10), 72)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(content))
}

func helpForView(id ViewID) []helpSection {
	global := helpSection{
		title: "Global",
		items: []helpItem{
			{key: "q / Ctrl+C", desc: "quit"},
			{key: "Esc", desc: "back to timeline"},
			{key: "?", desc: "toggle help"},
		},
	}

	switch id {
	case ViewTimeline:
		return []helpSection{
			global,
			{title: "Timeline", items: []helpItem{
				{key: "j/k", desc: "move selection"},
				{key: "g/G", desc: "top/bottom"},
				{key: "Enter / Space", desc: "show or hide details"},
				{key: "r", desc: "retry after a failed load"},
				{key: "c", desc: "ask the assistant"},
				{key: "w", desc: "this week"},
				{key: "p", desc: "partner card"},
				{key: "b", desc: "hospital bag"},
			}},
		}
	case ViewGoBag:
		return []helpSection{
			global,
			{title: "Hospital Bag", items: []helpItem{
				{key: "j/k", desc: "move selection"},
				{key: "Space / Enter", desc: "pack or unpack item"},
			}},
		}
	default:
		return []helpSection{global}
	}
}

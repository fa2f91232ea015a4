package styles

import "github.com/charmbracelet/lipgloss"

const (
	// LayoutInnerPadding is the default panel content padding.
	LayoutInnerPadding = 1

	// LayoutPanelMargin separates stacked panels.
	LayoutPanelMargin = 1

	// MaxContentWidth keeps long prose readable on wide terminals.
	MaxContentWidth = 96
)

// ContentWidth returns the usable text width for a screen of totalWidth.
func ContentWidth(totalWidth int) int {
	if totalWidth <= 0 {
		return 0
	}
	return clampInt(totalWidth-2*LayoutInnerPadding, 1, MaxContentWidth)
}

// PanelStyle returns a focused/unfocused border style for panes.
func PanelStyle(theme Theme, focused bool) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(panelBorderStyle(theme)).
		BorderForeground(lipgloss.Color(panelBorderColor(theme, focused))).
		Padding(0, LayoutInnerPadding).
		MarginBottom(LayoutPanelMargin)
}

// DividerStyle returns the divider style between sections.
func DividerStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Borders.Divider))
}

func panelBorderColor(theme Theme, focused bool) string {
	if focused {
		return theme.Borders.ActivePane
	}
	return theme.Borders.InactivePane
}

func panelBorderStyle(theme Theme) lipgloss.Border {
	switch theme.BorderStyle {
	case "double":
		return lipgloss.DoubleBorder()
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

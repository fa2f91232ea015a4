package doulatui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/tOgg1/doula/internal/doulatui/styles"
)

func themePalette(theme Theme) styles.Theme {
	return styles.Lookup(string(theme))
}

// truncateVis cuts s to max visible cells, keeping ANSI sequences intact.
func truncateVis(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	return truncate.StringWithTail(s, uint(max), "…")
}

// clampLines keeps the first height lines.
func clampLines(lines []string, height int) []string {
	if height <= 0 || len(lines) == 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	return lines[:height]
}

// clampTail keeps the last height lines.
func clampTail(lines []string, height int) []string {
	if height <= 0 || len(lines) == 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	return lines[len(lines)-height:]
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

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

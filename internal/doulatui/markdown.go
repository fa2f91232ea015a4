package doulatui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// markdownRenderer renders assistant replies. When disabled, or when glamour
// fails, text is only word-wrapped.
type markdownRenderer struct {
	enabled  bool
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(enabled bool, style string) *markdownRenderer {
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	return &markdownRenderer{enabled: enabled, style: style}
}

func (r *markdownRenderer) Render(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	if !r.enabled {
		return wordwrap.String(text, width)
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(text, width)
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return wordwrap.String(text, width)
	}
	return strings.Trim(out, "\n")
}

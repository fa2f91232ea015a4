package doulatui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tOgg1/doula/internal/doulatui/styles"
	"github.com/tOgg1/doula/internal/models"
)

type partnerView struct {
	tips []models.PartnerTip
}

func newPartnerView() *partnerView {
	return &partnerView{tips: models.PartnerTips}
}

func (v *partnerView) Init() tea.Cmd {
	return nil
}

func (v *partnerView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "backspace":
			return popViewCmd()
		}
	}
	return nil
}

func (v *partnerView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	textWidth := maxInt(10, styles.ContentWidth(width)-3)

	lines := []string{
		palette.TitleStyle().Render("Partner Mode"),
		"",
		"3 things you can do today to help:",
		"",
	}
	for i, tip := range v.tips {
		lines = append(lines, palette.AccentStyle().Bold(true).Render(fmt.Sprintf("%d. %s", i+1, tip.Title)))
		body := indent.String(wordwrap.String(tip.Description, textWidth), 3)
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}
	return strings.Join(clampLines(lines, height), "\n")
}

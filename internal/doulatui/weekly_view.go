package doulatui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tOgg1/doula/internal/doulatui/styles"
	"github.com/tOgg1/doula/internal/models"
)

type weeklyView struct {
	content models.WeeklyContent
}

func newWeeklyView(currentWeek int) *weeklyView {
	return &weeklyView{content: models.WeeklyContentFor(currentWeek)}
}

func (v *weeklyView) Init() tea.Cmd {
	return nil
}

func (v *weeklyView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "backspace":
			return popViewCmd()
		}
	}
	return nil
}

func (v *weeklyView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	textWidth := styles.ContentWidth(width)
	section := palette.AccentStyle().Bold(true)

	lines := []string{
		palette.TitleStyle().Render(fmt.Sprintf("Week %d", v.content.Week)),
		"",
		section.Render("Baby Status"),
		fmt.Sprintf("Size of a %s", v.content.Size),
	}
	lines = append(lines, strings.Split(wordwrap.String(v.content.BabyDevelopment, textWidth), "\n")...)
	lines = append(lines, "", section.Render("Mom's Body"))
	lines = append(lines, strings.Split(wordwrap.String(v.content.MomBody, textWidth), "\n")...)
	lines = append(lines, "", section.Render("This Week's Checklist"))
	for _, item := range v.content.Checklist {
		lines = append(lines, "  • "+item)
	}
	return strings.Join(clampLines(lines, height), "\n")
}

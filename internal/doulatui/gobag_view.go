package doulatui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/models"
)

// goBagLoadedMsg carries the store state read after the toggle numbered seq.
type goBagLoadedMsg struct {
	seq   uint64
	items []models.GoBagItem
	err   error
}

type goBagView struct {
	repo   *db.GoBagRepository
	userID int
	now    func() time.Time
	logger zerolog.Logger

	items    []models.GoBagItem
	selected int
	lastErr  error

	// seq counts toggles; reloads issued before the latest toggle are dropped.
	seq uint64
	// revision orders writes in the store; strictly increasing per view.
	revision int64
}

func newGoBagView(repo *db.GoBagRepository, userID int, now func() time.Time, logger zerolog.Logger) *goBagView {
	if now == nil {
		now = time.Now
	}
	return &goBagView{
		repo:   repo,
		userID: userID,
		now:    now,
		logger: logger,
		items:  models.DefaultGoBag(),
	}
}

func (v *goBagView) Init() tea.Cmd {
	repo := v.repo
	userID := v.userID
	seq := v.seq
	return func() tea.Msg {
		items, err := repo.Items(context.Background(), userID)
		return goBagLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (v *goBagView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case goBagLoadedMsg:
		if typed.seq < v.seq {
			return nil
		}
		v.lastErr = typed.err
		if typed.err != nil {
			v.logger.Warn().Err(typed.err).Msg("load go-bag failed")
			return nil
		}
		v.items = typed.items
		v.selected = clampInt(v.selected, 0, maxInt(0, len(v.items)-1))
		return nil
	case tea.KeyMsg:
		switch typed.String() {
		case "esc", "backspace":
			return popViewCmd()
		case "j", "down":
			v.selected = clampInt(v.selected+1, 0, maxInt(0, len(v.items)-1))
		case "k", "up":
			v.selected = clampInt(v.selected-1, 0, maxInt(0, len(v.items)-1))
		case " ", "enter", "x":
			return v.toggleSelected()
		}
	}
	return nil
}

// toggleSelected flips the item locally and persists it, reloading the list
// from the store afterwards. Writes carry an increasing revision so a slow
// earlier write cannot overwrite a later one.
func (v *goBagView) toggleSelected() tea.Cmd {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	v.items[v.selected].Checked = !v.items[v.selected].Checked
	item := v.items[v.selected]

	v.seq++
	v.revision = max(v.now().UnixNano(), v.revision+1)
	seq := v.seq
	revision := v.revision
	repo := v.repo
	userID := v.userID
	logger := v.logger
	return func() tea.Msg {
		ctx := context.Background()
		applied, err := repo.SetCheckedAt(ctx, userID, item.ID, item.Checked, revision)
		if err != nil {
			return goBagLoadedMsg{seq: seq, err: err}
		}
		if !applied {
			logger.Debug().Int("item_id", item.ID).Int64("revision", revision).Msg("go-bag write superseded")
		}
		items, err := repo.Items(ctx, userID)
		return goBagLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (v *goBagView) packed() int {
	n := 0
	for _, item := range v.items {
		if item.Checked {
			n++
		}
	}
	return n
}

func (v *goBagView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	checkedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Past)).Strikethrough(true)
	selectedStyle := lipgloss.NewStyle().Background(lipgloss.Color(palette.Chrome.SelectedItem))

	lines := []string{
		palette.TitleStyle().Render("Hospital Bag"),
		palette.MutedStyle().Render(fmt.Sprintf("Pack by Week %d · %d/%d packed", models.GoBagPackByWeek, v.packed(), len(v.items))),
	}

	category := ""
	for i, item := range v.items {
		if item.Category != category {
			category = item.Category
			lines = append(lines, "", palette.AccentStyle().Bold(true).Render(category))
		}
		box := "[ ]"
		text := item.Text
		if item.Checked {
			box = "[x]"
			text = checkedStyle.Render(text)
		}
		row := fmt.Sprintf("  %s %s", box, text)
		if i == v.selected {
			row = selectedStyle.Render(truncateVis(row, width))
		}
		lines = append(lines, truncateVis(row, width))
	}
	if v.lastErr != nil {
		lines = append(lines, "", palette.ErrorStyle().Render("storage error: "+strings.TrimSpace(v.lastErr.Error())))
	}
	return strings.Join(clampLines(lines, height), "\n")
}

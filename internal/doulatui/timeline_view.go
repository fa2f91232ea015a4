package doulatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tOgg1/doula/internal/api"
	"github.com/tOgg1/doula/internal/doulatui/styles"
	"github.com/tOgg1/doula/internal/models"
)

const timelineIndent = 4

type timelineView struct {
	nav         *navigator
	fetcher     *timelineFetcher
	userID      int
	currentWeek int

	spinner spinner.Model
	mounted bool
	top     int
}

func newTimelineView(nav *navigator, fetcher *timelineFetcher, userID, currentWeek int) *timelineView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &timelineView{
		nav:         nav,
		fetcher:     fetcher,
		userID:      userID,
		currentWeek: currentWeek,
		spinner:     s,
	}
}

// Init fetches on first mount only; returning from a panel reuses the events.
func (v *timelineView) Init() tea.Cmd {
	if v.mounted {
		return nil
	}
	v.mounted = true
	return v.startFetch()
}

func (v *timelineView) Close() {
	v.fetcher.Close()
}

func (v *timelineView) startFetch() tea.Cmd {
	cmd := v.fetcher.fetchCmd(v.userID)
	if cmd == nil {
		return nil
	}
	v.nav.beginLoad()
	return tea.Batch(cmd, v.spinner.Tick)
}

func (v *timelineView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case timelineLoadedMsg:
		if !v.fetcher.accept(typed) {
			return nil
		}
		v.nav.finishLoad(typed.events, typed.err)
		v.top = 0
		return nil
	case spinner.TickMsg:
		if !v.nav.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(typed)
		return cmd
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *timelineView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.nav.loading {
		return nil
	}
	store := &v.nav.store
	switch msg.String() {
	case "j", "down":
		store.move(1)
	case "k", "up":
		store.move(-1)
	case "g", "home":
		store.move(-store.len())
	case "G", "end":
		store.move(store.len())
	case "enter", " ":
		if event, ok := store.selectedEvent(); ok {
			store.toggleExpanded(event.ID)
		}
	case "r":
		if v.nav.phase() == phaseFailed {
			return v.startFetch()
		}
	}
	return nil
}

func (v *timelineView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)

	switch phase := v.nav.phase(); phase {
	case phaseLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			v.spinner.View()+" Loading your timeline...")
	case phaseFailed:
		return v.renderFailure(width, height, palette)
	case phaseEmpty:
		lines := []string{
			v.renderTitle(width, palette),
			"",
			palette.MutedStyle().Render("No timeline events yet."),
		}
		return strings.Join(clampLines(lines, height), "\n")
	case phaseReady:
		return v.renderEvents(width, height, palette)
	default:
		return fmt.Sprintf("unknown timeline phase %s", phase)
	}
}

func (v *timelineView) renderTitle(width int, palette styles.Theme) string {
	left := palette.TitleStyle().Render("Your Medical Timeline")
	right := palette.MutedStyle().Render(fmt.Sprintf("Week %d", v.currentWeek))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return truncateVis(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (v *timelineView) renderFailure(width, height int, palette styles.Theme) string {
	message := api.UserMessage(v.nav.lastErr)
	lines := []string{
		v.renderTitle(width, palette),
		"",
		palette.ErrorStyle().Render("Could not load your timeline"),
	}
	for _, line := range strings.Split(wordwrap.String(message, styles.ContentWidth(width)), "\n") {
		lines = append(lines, palette.ErrorStyle().UnsetBold().Render(line))
	}
	lines = append(lines, "", palette.MutedStyle().Render("press r to retry"))
	return strings.Join(clampLines(lines, height), "\n")
}

func (v *timelineView) renderEvents(width, height int, palette styles.Theme) string {
	title := v.renderTitle(width, palette)
	bodyHeight := height - 2
	if bodyHeight <= 0 {
		return title
	}

	events := v.nav.store.list()
	lines := make([]string, 0, len(events)*3)
	selStart, selEnd := 0, 0
	for i, event := range events {
		block := v.renderEvent(event, i == v.nav.store.selected, width, palette)
		if i == v.nav.store.selected {
			selStart, selEnd = len(lines), len(lines)+len(block)
		}
		lines = append(lines, block...)
	}

	v.ensureViewport(selStart, selEnd, bodyHeight, len(lines))
	end := minInt(len(lines), v.top+bodyHeight)
	visible := lines[v.top:end]
	return strings.Join(append([]string{title, ""}, visible...), "\n")
}

func (v *timelineView) ensureViewport(selStart, selEnd, rows, total int) {
	if selStart < v.top {
		v.top = selStart
	}
	if selEnd > v.top+rows {
		v.top = selEnd - rows
		if v.top > selStart {
			v.top = selStart
		}
	}
	v.top = clampInt(v.top, 0, maxInt(0, total-1))
}

// renderEvent renders one event as a block of lines: a heading, the
// wrapped description and, when expanded, the details.
func (v *timelineView) renderEvent(event models.TimelineEvent, selected bool, width int, palette styles.Theme) []string {
	status := event.StatusAt(v.currentWeek)
	marker := styles.StatusMarker(palette, status)
	textWidth := maxInt(10, styles.ContentWidth(width)-timelineIndent)

	titleStyle := lipgloss.NewStyle().Bold(true)
	switch status {
	case models.StatusCurrent:
		titleStyle = titleStyle.Foreground(lipgloss.Color(palette.Status.Current))
	case models.StatusPast:
		titleStyle = titleStyle.Foreground(lipgloss.Color(palette.Base.Muted))
	case models.StatusFuture:
		titleStyle = titleStyle.Foreground(lipgloss.Color(palette.Base.Foreground))
	}

	head := []string{
		palette.MutedStyle().Render(fmt.Sprintf("Weeks %d-%d", event.WeekStart, event.WeekEnd)),
		titleStyle.Render(event.Title),
		styles.CategoryBadge(palette, event.Category),
	}
	if status == models.StatusCurrent {
		head = append(head, styles.CurrentTag(palette))
	}
	if event.IsCompleted {
		head = append(head, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Past)).Render("✓ done"))
	}
	if event.HasDetails() {
		if v.nav.store.expanded(event.ID) {
			head = append(head, palette.MutedStyle().Render("▾"))
		} else {
			head = append(head, palette.MutedStyle().Render("▸"))
		}
	}

	heading := marker + " " + strings.Join(head, "  ")
	if selected {
		heading = lipgloss.NewStyle().Background(lipgloss.Color(palette.Chrome.SelectedItem)).Render(heading)
	}
	lines := []string{truncateVis(heading, width)}

	if desc := strings.TrimSpace(event.Description); desc != "" {
		lines = append(lines, indentBlock(marker, wordwrap.String(desc, textWidth))...)
	}
	if v.nav.store.expanded(event.ID) {
		if details := strings.TrimSpace(event.Details); details != "" {
			lines = append(lines, indentBlock(marker, wordwrap.String(details, textWidth))...)
		}
		if normal := strings.TrimSpace(event.NormalValues); normal != "" {
			label := palette.AccentStyle().Render("Normal values: ")
			lines = append(lines, indentBlock(marker, label+wordwrap.String(normal, textWidth))...)
		}
	}
	lines = append(lines, "")
	return lines
}

func indentBlock(marker, text string) []string {
	indented := indent.String(text, timelineIndent-2)
	out := strings.Split(indented, "\n")
	for i := range out {
		out[i] = marker + " " + out[i]
	}
	return out
}

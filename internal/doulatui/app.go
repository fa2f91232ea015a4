// Package doulatui is the Bubble Tea terminal UI for doula.
package doulatui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

type Theme string

const (
	ThemeDefault      Theme = "default"
	ThemeHighContrast Theme = "high-contrast"
)

type ViewID string

const (
	ViewOnboarding ViewID = "onboarding"
	ViewTimeline   ViewID = "timeline"
	ViewChat       ViewID = "chat"
	ViewWeekly     ViewID = "weekly"
	ViewPartner    ViewID = "partner"
	ViewGoBag      ViewID = "gobag"
)

var viewSwitchKeys = map[string]ViewID{
	"c": ViewChat,
	"w": ViewWeekly,
	"p": ViewPartner,
	"b": ViewGoBag,
}

// Backend is the subset of the API client the screens call.
type Backend interface {
	FetchTimeline(ctx context.Context, userID int) ([]models.TimelineEvent, error)
	Onboard(ctx context.Context, req models.OnboardingRequest) (models.OnboardingResult, error)
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error)
}

type Config struct {
	Backend  Backend
	DB       *db.DB
	Theme    string
	Markdown bool
	// Now overrides the clock used for gestational week arithmetic.
	Now    func() time.Time
	Logger *zerolog.Logger
}

type Model struct {
	backend  Backend
	profiles *db.ProfileRepository
	chats    *db.ChatRepository
	gobag    *db.GoBagRepository
	theme    Theme
	markdown bool
	now      func() time.Time
	base     zerolog.Logger
	logger   zerolog.Logger

	profile *models.Profile

	width    int
	height   int
	showHelp bool

	nav   *navigator
	views map[ViewID]viewModel
}

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme Theme) string
}

// textCapturer is implemented by views whose text input owns printable keys.
type textCapturer interface {
	capturesText() bool
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

type onboardedMsg struct {
	profile models.Profile
}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	base := logging.Logger
	if normalized.Logger != nil {
		base = *normalized.Logger
	}

	m := &Model{
		backend:  normalized.Backend,
		profiles: db.NewProfileRepository(normalized.DB),
		chats:    db.NewChatRepository(normalized.DB),
		gobag:    db.NewGoBagRepository(normalized.DB),
		theme:    Theme(normalized.Theme),
		markdown: normalized.Markdown,
		now:      normalized.Now,
		base:     base,
		logger:   base.With().Str("component", "tui").Logger(),
		views:    make(map[ViewID]viewModel),
	}

	profile, err := m.profiles.Latest(context.Background())
	switch {
	case err == nil:
		m.setProfile(*profile)
	case errors.Is(err, db.ErrNotFound):
		m.views[ViewOnboarding] = newOnboardingView(m.backend, m.profiles, m.now, m.componentLogger("onboarding"))
	default:
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return m, nil
}

func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Close() error {
	if m == nil {
		return nil
	}
	for _, view := range m.views {
		if closer, ok := view.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case onboardedMsg:
		if closer, ok := m.views[ViewOnboarding].(interface{ Close() }); ok {
			closer.Close()
		}
		delete(m.views, ViewOnboarding)
		m.setProfile(typed.profile)
		userLog := logging.WithUser(m.logger, typed.profile.UserID)
		userLog.Info().Msg("onboarding complete")
		return m, m.activeView().Init()
	case pushViewMsg:
		return m, m.openView(typed.id)
	case popViewMsg:
		return m, m.back()
	case timelineLoadedMsg:
		// Delivered to the timeline even if it is not on top; the fetcher drops stale results.
		if view := m.views[ViewTimeline]; view != nil {
			return m, view.Update(typed)
		}
		return m, nil
	case chatReplyMsg, chatHistoryMsg:
		if view := m.views[ViewChat]; view != nil {
			return m, view.Update(typed)
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	if active := m.activeView(); active != nil {
		return m, active.Update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	active := m.activeView()
	if active == nil {
		return "no active view"
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	var body string
	if m.showHelp {
		body = m.renderHelpOverlay(m.width, contentHeight, m.theme)
	} else {
		body = active.View(m.width, contentHeight, m.theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit, true
	}
	if capturer, ok := m.activeView().(textCapturer); ok && capturer.capturesText() {
		return nil, false
	}

	switch key {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case "esc":
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
	}

	if next, ok := viewSwitchKeys[key]; ok && m.nav != nil {
		return m.openView(next), true
	}
	return nil, false
}

// openView asks the navigator for a transition and mounts the target view.
// Rejected transitions are no-ops.
func (m *Model) openView(id ViewID) tea.Cmd {
	if m.nav == nil || !m.nav.open(id) {
		return nil
	}
	m.logger.Debug().Str("view", string(id)).Msg("open view")
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	if m.nav == nil || !m.nav.back() {
		return nil
	}
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if m.nav == nil {
		return ViewOnboarding
	}
	return m.nav.active
}

func (m *Model) currentWeek() int {
	if m.profile == nil {
		return 0
	}
	return m.profile.CurrentWeek(m.now())
}

func (m *Model) componentLogger(name string) zerolog.Logger {
	return m.base.With().Str("component", name).Logger()
}

func (m *Model) setProfile(profile models.Profile) {
	m.profile = &profile
	m.nav = newNavigator()
	m.initViews()
}

func (m *Model) initViews() {
	userID := m.profile.UserID
	week := m.currentWeek()
	m.views[ViewTimeline] = newTimelineView(m.nav, newTimelineFetcher(m.backend, m.componentLogger("timeline")), userID, week)
	m.views[ViewChat] = newChatView(m.backend, m.chats, userID, newMarkdownRenderer(m.markdown, themePalette(m.theme).MarkdownStyle), m.componentLogger("chat"))
	m.views[ViewWeekly] = newWeeklyView(week)
	m.views[ViewPartner] = newPartnerView()
	m.views[ViewGoBag] = newGoBagView(m.gobag, userID, m.now, m.componentLogger("gobag"))
}

func (c Config) normalize() (Config, error) {
	if c.Backend == nil {
		return Config{}, fmt.Errorf("backend is required")
	}
	if c.DB == nil {
		return Config{}, fmt.Errorf("database is required")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = string(ThemeDefault)
	}
	switch Theme(c.Theme) {
	case ThemeDefault, ThemeHighContrast:
	default:
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	return c, nil
}

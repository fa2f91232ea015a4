package doulatui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/api"
	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

// OnboardingClient creates a profile on the backend.
type OnboardingClient interface {
	Onboard(ctx context.Context, req models.OnboardingRequest) (models.OnboardingResult, error)
}

type onboardingField int

const (
	fieldName onboardingField = iota
	fieldFirstPregnancy
	fieldDateMode
	fieldDate
	fieldRiskFactors
	fieldSubmit
	onboardingFieldCount
)

type onboardingFailedMsg struct {
	err error
}

type onboardingView struct {
	client   OnboardingClient
	profiles *db.ProfileRepository
	now      func() time.Time
	logger   zerolog.Logger

	name  textinput.Model
	date  textinput.Model
	risks textinput.Model

	firstPregnancy bool
	mode           models.DateMode
	focus          onboardingField
	submitting     bool
	errText        string
	cancel         context.CancelFunc
}

func newOnboardingView(client OnboardingClient, profiles *db.ProfileRepository, now func() time.Time, logger zerolog.Logger) *onboardingView {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 80

	date := textinput.New()
	date.Placeholder = models.DateLayout
	date.CharLimit = len(models.DateLayout)

	risks := textinput.New()
	risks.Placeholder = "e.g. gestational diabetes, twins"
	risks.CharLimit = 500

	return &onboardingView{
		client:         client,
		profiles:       profiles,
		now:            now,
		logger:         logger,
		name:           name,
		date:           date,
		risks:          risks,
		firstPregnancy: true,
		mode:           models.DateModeLMP,
	}
}

func (v *onboardingView) Init() tea.Cmd {
	return tea.Batch(v.applyFocus(), textinput.Blink)
}

func (v *onboardingView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// capturesText is true while a text field has focus.
func (v *onboardingView) capturesText() bool {
	switch v.focus {
	case fieldName, fieldDate, fieldRiskFactors:
		return true
	default:
		return false
	}
}

func (v *onboardingView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case onboardingFailedMsg:
		v.submitting = false
		v.Close()
		v.errText = onboardingErrorText(typed.err)
		v.logger.Error().Err(typed.err).Str("kind", api.Classify(typed.err).String()).Msg("onboarding failed")
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return v.updateFocusedInput(msg)
}

func (v *onboardingView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.submitting {
		return nil
	}
	switch msg.String() {
	case "tab", "down":
		return v.moveFocus(1)
	case "shift+tab", "up":
		return v.moveFocus(-1)
	case "enter":
		if v.focus == fieldSubmit {
			return v.submit()
		}
		if v.focus == fieldFirstPregnancy || v.focus == fieldDateMode {
			v.toggleFocused()
			return nil
		}
		return v.moveFocus(1)
	case " ":
		if v.focus == fieldFirstPregnancy || v.focus == fieldDateMode {
			v.toggleFocused()
			return nil
		}
		if v.focus == fieldSubmit {
			return v.submit()
		}
	case "ctrl+s":
		return v.submit()
	}
	return v.updateFocusedInput(msg)
}

func (v *onboardingView) toggleFocused() {
	switch v.focus {
	case fieldFirstPregnancy:
		v.firstPregnancy = !v.firstPregnancy
	case fieldDateMode:
		v.mode = v.mode.Toggle()
	}
}

func (v *onboardingView) moveFocus(delta int) tea.Cmd {
	next := (int(v.focus) + delta + int(onboardingFieldCount)) % int(onboardingFieldCount)
	v.focus = onboardingField(next)
	return v.applyFocus()
}

func (v *onboardingView) applyFocus() tea.Cmd {
	v.name.Blur()
	v.date.Blur()
	v.risks.Blur()
	switch v.focus {
	case fieldName:
		return v.name.Focus()
	case fieldDate:
		return v.date.Focus()
	case fieldRiskFactors:
		return v.risks.Focus()
	}
	return nil
}

func (v *onboardingView) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case fieldName:
		v.name, cmd = v.name.Update(msg)
	case fieldDate:
		v.date, cmd = v.date.Update(msg)
	case fieldRiskFactors:
		v.risks, cmd = v.risks.Update(msg)
	}
	return cmd
}

func (v *onboardingView) request() (models.OnboardingRequest, error) {
	req := models.OnboardingRequest{
		Name:             strings.TrimSpace(v.name.Value()),
		IsFirstPregnancy: v.firstPregnancy,
		HighRiskFactors:  strings.TrimSpace(v.risks.Value()),
		Mode:             v.mode,
	}
	if raw := strings.TrimSpace(v.date.Value()); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return req, fmt.Errorf("date must look like %s", models.DateLayout)
		}
		req.Date = date
	}
	return req, req.Validate(v.now())
}

func (v *onboardingView) submit() tea.Cmd {
	req, err := v.request()
	if err != nil {
		v.errText = onboardingErrorText(err)
		return nil
	}
	v.errText = ""
	v.submitting = true

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	client := v.client
	profiles := v.profiles
	logger := v.logger
	return func() tea.Msg {
		result, err := client.Onboard(ctx, req)
		if err != nil {
			return onboardingFailedMsg{err: err}
		}
		profile := models.ProfileFromOnboarding(req, result)
		if err := profiles.Save(ctx, &profile); err != nil {
			return onboardingFailedMsg{err: fmt.Errorf("save profile: %w", err)}
		}
		userLog := logging.WithUser(logger, profile.UserID)
		userLog.Info().Int("current_week", result.CurrentWeek).Msg("profile created")
		return onboardedMsg{profile: profile}
	}
}

func onboardingErrorText(err error) string {
	switch {
	case errors.Is(err, models.ErrMissingName):
		return "Please enter your name"
	case errors.Is(err, models.ErrMissingDate):
		return "Please enter a date"
	case errors.Is(err, models.ErrLMPInFuture):
		return "Your last period cannot be in the future"
	case errors.Is(err, models.ErrDueDateTooEarly):
		return "That due date is more than two weeks past"
	}
	switch api.Classify(err) {
	case api.KindNetwork, api.KindServer, api.KindMalformed, api.KindCanceled:
		return api.UserMessage(err)
	default:
		return err.Error()
	}
}

func (v *onboardingView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	label := lipgloss.NewStyle().Bold(true)
	focused := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Accent)).Bold(true)

	caret := func(field onboardingField) string {
		if v.focus == field {
			return focused.Render("›") + " "
		}
		return "  "
	}
	toggle := func(field onboardingField, text string) string {
		if v.focus == field {
			return focused.Render("[ " + text + " ]")
		}
		return "[ " + text + " ]"
	}

	firstLabel := "No"
	if v.firstPregnancy {
		firstLabel = "Yes"
	}
	modeLabel := "LMP | (Due Date)"
	if v.mode == models.DateModeLMP {
		modeLabel = "(LMP) | Due Date"
	}

	lines := []string{
		palette.TitleStyle().Render("Digital Doula Setup"),
		palette.MutedStyle().Render("Let's personalize your journey."),
		"",
		caret(fieldName) + label.Render("Name"),
		"  " + v.name.View(),
		"",
		caret(fieldFirstPregnancy) + label.Render("First pregnancy? ") + toggle(fieldFirstPregnancy, firstLabel),
		caret(fieldDateMode) + label.Render("I know my ") + toggle(fieldDateMode, modeLabel),
		"",
		caret(fieldDate) + label.Render(v.mode.Prompt()),
		"  " + v.date.View(),
		"",
		caret(fieldRiskFactors) + label.Render("Any high risk factors? (Optional)"),
		"  " + v.risks.View(),
		"",
	}

	button := "Start My Journey"
	if v.submitting {
		button = "Processing..."
	}
	lines = append(lines, caret(fieldSubmit)+toggle(fieldSubmit, button))
	if v.errText != "" {
		lines = append(lines, "")
		for _, line := range strings.Split(v.errText, "\n") {
			lines = append(lines, palette.ErrorStyle().Render(truncateVis(line, maxInt(0, width-2))))
		}
	}
	return strings.Join(clampLines(lines, height), "\n")
}

package doulatui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/doulatui/styles"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

const (
	chatHistoryLimit = 200
	chatInputLimit   = 1000
)

// ChatClient sends one message to the assistant.
type ChatClient interface {
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error)
}

type chatHistoryMsg struct {
	messages []models.ChatMessage
	err      error
}

type chatReplyMsg struct {
	reply models.ChatMessage
	err   error
}

type chatView struct {
	client   ChatClient
	repo     *db.ChatRepository
	userID   int
	markdown *markdownRenderer
	logger   zerolog.Logger

	input    textinput.Model
	messages []models.ChatMessage
	loaded   bool
	pending  bool
	cancel   context.CancelFunc
}

func newChatView(client ChatClient, repo *db.ChatRepository, userID int, markdown *markdownRenderer, logger zerolog.Logger) *chatView {
	input := textinput.New()
	input.Placeholder = "Ask about symptoms, medical terms..."
	input.CharLimit = chatInputLimit
	input.Prompt = "> "
	return &chatView{
		client:   client,
		repo:     repo,
		userID:   userID,
		markdown: markdown,
		logger:   logger,
		input:    input,
		messages: []models.ChatMessage{models.Greeting(userID)},
	}
}

func (v *chatView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.input.Focus(), textinput.Blink}
	if !v.loaded {
		cmds = append(cmds, v.loadHistoryCmd())
	}
	return tea.Batch(cmds...)
}

func (v *chatView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *chatView) capturesText() bool {
	return true
}

func (v *chatView) loadHistoryCmd() tea.Cmd {
	repo := v.repo
	userID := v.userID
	return func() tea.Msg {
		messages, err := repo.ListByUser(context.Background(), userID, chatHistoryLimit)
		return chatHistoryMsg{messages: messages, err: err}
	}
}

func (v *chatView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case chatHistoryMsg:
		v.loaded = true
		if typed.err != nil {
			v.logger.Warn().Err(typed.err).Msg("load chat history failed")
			return nil
		}
		// Greeting first, then stored history, then anything sent before the load finished.
		live := v.messages[1:]
		merged := make([]models.ChatMessage, 0, 1+len(typed.messages)+len(live))
		merged = append(merged, v.messages[0])
		merged = append(merged, typed.messages...)
		seen := make(map[string]struct{}, len(typed.messages))
		for _, m := range typed.messages {
			seen[m.ID] = struct{}{}
		}
		for _, m := range live {
			if _, dup := seen[m.ID]; !dup {
				merged = append(merged, m)
			}
		}
		v.messages = merged
		return nil
	case chatReplyMsg:
		v.pending = false
		v.Close()
		if typed.err != nil {
			v.logger.Error().Err(typed.err).Msg("chat request failed")
		}
		v.messages = append(v.messages, typed.reply)
		return v.persistCmd(typed.reply)
	case tea.KeyMsg:
		return v.handleKey(typed)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *chatView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.input.Blur()
		return popViewCmd()
	case "enter":
		return v.send()
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *chatView) send() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" || v.pending {
		return nil
	}
	v.input.SetValue("")

	outgoing := models.NewChatMessage(v.userID, models.SenderUser, text)
	v.messages = append(v.messages, outgoing)
	v.pending = true

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logging.WithUser(v.logger, v.userID)))
	v.cancel = cancel
	client := v.client
	userID := v.userID
	request := func() tea.Msg {
		reply, err := client.Chat(ctx, models.ChatRequest{UserID: userID, Message: text})
		if err != nil {
			return chatReplyMsg{reply: models.NewChatMessage(userID, models.SenderAI, models.ChatConnectionFailure), err: err}
		}
		return chatReplyMsg{reply: models.NewChatMessage(userID, models.SenderAI, reply.Response)}
	}
	return tea.Batch(v.persistCmd(outgoing), request)
}

// persistCmd stores msg off the Update goroutine. Storage failures are logged only.
func (v *chatView) persistCmd(msg models.ChatMessage) tea.Cmd {
	repo := v.repo
	logger := v.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Append(ctx, &msg); err != nil {
			logger.Warn().Err(err).Str("sender", string(msg.Sender)).Msg("persist chat message failed")
		}
		return nil
	}
}

func (v *chatView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	textWidth := styles.ContentWidth(width)

	transcript := make([]string, 0, len(v.messages)*3)
	for _, msg := range v.messages {
		transcript = append(transcript, v.renderMessage(msg, textWidth, palette)...)
		transcript = append(transcript, "")
	}
	if v.pending {
		transcript = append(transcript, lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Chat.Pending)).
			Italic(true).
			Render(models.AssistantName+" is thinking..."))
	}

	v.input.Width = maxInt(10, textWidth-4)
	inputLine := styles.PanelStyle(palette, true).MarginBottom(0).Width(textWidth).Render(v.input.View())
	inputHeight := lipgloss.Height(inputLine)

	body := clampTail(transcript, height-inputHeight)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(body, "\n"), inputLine)
}

func (v *chatView) renderMessage(msg models.ChatMessage, width int, palette styles.Theme) []string {
	switch msg.Sender {
	case models.SenderUser:
		label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chat.User)).Render("You")
		text := wordwrap.String(msg.Text, width)
		return append([]string{label}, strings.Split(text, "\n")...)
	default:
		label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Base.Accent)).Render(models.AssistantName)
		text := v.markdown.Render(msg.Text, width)
		return append([]string{label}, strings.Split(text, "\n")...)
	}
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// AssistantName is how the chat assistant introduces itself.
	AssistantName = "Antigravity"

	// ChatGreeting seeds every new conversation.
	ChatGreeting = "Hi! I'm Antigravity. How are you feeling today?"

	// ChatConnectionFailure replaces the reply when the request fails.
	ChatConnectionFailure = "Sorry, I'm having trouble connecting."
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one entry in the chat transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage stamps a message with a fresh id and the current time.
func NewChatMessage(userID int, sender Sender, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now().UTC(),
	}
}

// Greeting returns the opening assistant message.
func Greeting(userID int) ChatMessage {
	return NewChatMessage(userID, SenderAI, ChatGreeting)
}

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

// Validate rejects blank messages.
func (r ChatRequest) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(r.Message) == "" {
		validation.AddMessage("message", "message text is required")
	}
	if r.UserID <= 0 {
		validation.AddMessage("user_id", "must be positive")
	}
	return validation.Err()
}

// ChatReply is the POST /chat response.
type ChatReply struct {
	Response string `json:"response"`
}

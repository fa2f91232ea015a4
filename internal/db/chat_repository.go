package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tOgg1/doula/internal/models"
)

// ErrInvalidChatMessage is returned for a message without user, sender or text.
var ErrInvalidChatMessage = errors.New("invalid chat message")

// ChatRepository persists the conversation history.
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Append stores msg, assigning an ID and timestamp when missing.
func (r *ChatRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	if msg == nil || msg.UserID <= 0 || msg.Text == "" {
		return ErrInvalidChatMessage
	}
	if msg.Sender != models.SenderUser && msg.Sender != models.SenderAI {
		return ErrInvalidChatMessage
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, sender, text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ID,
		msg.UserID,
		string(msg.Sender),
		msg.Text,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListByUser returns the newest limit messages for userID in chronological order.
// limit <= 0 returns everything.
func (r *ChatRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, sender, text, created_at FROM (
			SELECT id, user_id, sender, text, created_at, rowid AS seq
			FROM chat_messages WHERE user_id = ?
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		) ORDER BY created_at ASC, seq ASC`
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var (
			msg       models.ChatMessage
			sender    string
			createdAt string
		)
		if err := rows.Scan(&msg.ID, &msg.UserID, &sender, &msg.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Sender = models.Sender(sender)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			msg.CreatedAt = ts
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return out, nil
}

// Clear removes the history for userID.
func (r *ChatRepository) Clear(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tOgg1/doula/internal/models"
)

// ErrInvalidProfile is returned for a profile missing its user id or name.
var ErrInvalidProfile = errors.New("invalid profile")

// ProfileRepository stores onboarding results.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Save inserts or replaces the profile for p.UserID.
func (r *ProfileRepository) Save(ctx context.Context, p *models.Profile) error {
	if p == nil || p.UserID <= 0 || strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProfile
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	return r.db.TransactionWithRetry(ctx, 0, 0, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (user_id, name, due_date, is_first_pregnancy, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				name = excluded.name,
				due_date = excluded.due_date,
				is_first_pregnancy = excluded.is_first_pregnancy,
				created_at = excluded.created_at`,
			p.UserID,
			p.Name,
			p.DueDate.Format(models.DateLayout),
			boolToInt(p.IsFirstPregnancy),
			p.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return nil
	})
}

// Get returns the profile for userID or ErrNotFound.
func (r *ProfileRepository) Get(ctx context.Context, userID int) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, due_date, is_first_pregnancy, created_at
		FROM profiles WHERE user_id = ?`, userID)
	return scanProfile(row)
}

// Latest returns the most recently saved profile or ErrNotFound.
func (r *ProfileRepository) Latest(ctx context.Context) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, due_date, is_first_pregnancy, created_at
		FROM profiles ORDER BY created_at DESC, user_id DESC LIMIT 1`)
	return scanProfile(row)
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var (
		p         models.Profile
		dueDate   string
		firstPreg int
		createdAt string
	)
	if err := row.Scan(&p.UserID, &p.Name, &dueDate, &firstPreg, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	due, err := models.ParseDate(dueDate)
	if err != nil {
		return nil, fmt.Errorf("stored due date: %w", err)
	}
	p.DueDate = due
	p.IsFirstPregnancy = firstPreg != 0
	if created, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = created
	}
	return &p, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tOgg1/doula/internal/models"
)

// ErrUnknownGoBagItem is returned when toggling an id outside the checklist.
var ErrUnknownGoBagItem = errors.New("unknown go-bag item")

// GoBagRepository persists which checklist items are packed.
type GoBagRepository struct {
	db *DB
}

// NewGoBagRepository creates a new GoBagRepository.
func NewGoBagRepository(db *DB) *GoBagRepository {
	return &GoBagRepository{db: db}
}

// Items returns the default checklist for userID with stored check marks applied.
func (r *GoBagRepository) Items(ctx context.Context, userID int) ([]models.GoBagItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id, checked FROM gobag_items WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load go-bag: %w", err)
	}
	defer rows.Close()

	checked := make(map[int]bool)
	for rows.Next() {
		var id, value int
		if err := rows.Scan(&id, &value); err != nil {
			return nil, fmt.Errorf("failed to scan go-bag item: %w", err)
		}
		checked[id] = value != 0
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load go-bag: %w", err)
	}

	items := models.DefaultGoBag()
	for i := range items {
		items[i].Checked = checked[items[i].ID]
	}
	return models.OrderGoBag(items), nil
}

// SetChecked records the packed state of one item, stamped with the current time.
func (r *GoBagRepository) SetChecked(ctx context.Context, userID, itemID int, checked bool) error {
	_, err := r.SetCheckedAt(ctx, userID, itemID, checked, time.Now().UnixNano())
	return err
}

// SetCheckedAt records the packed state of one item unless a write with a
// higher revision is already stored. It reports whether the write applied.
func (r *GoBagRepository) SetCheckedAt(ctx context.Context, userID, itemID int, checked bool, revision int64) (bool, error) {
	if !knownGoBagItem(itemID) {
		return false, fmt.Errorf("%w: %d", ErrUnknownGoBagItem, itemID)
	}
	applied := false
	err := r.db.TransactionWithRetry(ctx, 0, 0, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO gobag_items (user_id, item_id, checked, updated_at, revision)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id, item_id) DO UPDATE SET
				checked = excluded.checked,
				updated_at = excluded.updated_at,
				revision = excluded.revision
			WHERE excluded.revision > gobag_items.revision`,
			userID, itemID, boolToInt(checked), time.Now().UTC().Format(time.RFC3339Nano), revision,
		)
		if err != nil {
			return fmt.Errorf("failed to update go-bag item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update go-bag item: %w", err)
		}
		applied = n > 0
		return nil
	})
	return applied, err
}

func knownGoBagItem(id int) bool {
	for _, item := range models.DefaultGoBag() {
		if item.ID == id {
			return true
		}
	}
	return false
}

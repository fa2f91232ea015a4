package db

import (
	"context"
	"errors"
	"testing"

	"github.com/tOgg1/doula/internal/models"
)

func TestGoBagRepository_DefaultsUnchecked(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	items, err := NewGoBagRepository(db).Items(context.Background(), 7)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != len(models.DefaultGoBag()) {
		t.Fatalf("expected %d items, got %d", len(models.DefaultGoBag()), len(items))
	}
	for _, item := range items {
		if item.Checked {
			t.Fatalf("expected item %d unchecked", item.ID)
		}
	}
}

func TestGoBagRepository_SetChecked(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewGoBagRepository(db)
	ctx := context.Background()

	if err := repo.SetChecked(ctx, 7, 2, true); err != nil {
		t.Fatalf("SetChecked failed: %v", err)
	}
	if err := repo.SetChecked(ctx, 7, 5, true); err != nil {
		t.Fatalf("SetChecked failed: %v", err)
	}
	if err := repo.SetChecked(ctx, 7, 2, false); err != nil {
		t.Fatalf("SetChecked failed: %v", err)
	}

	items, err := repo.Items(ctx, 7)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	checked := map[int]bool{}
	for _, item := range items {
		checked[item.ID] = item.Checked
	}
	if checked[2] || !checked[5] {
		t.Fatalf("unexpected checked state: %+v", checked)
	}

	others, err := repo.Items(ctx, 8)
	if err != nil {
		t.Fatalf("Items other user failed: %v", err)
	}
	for _, item := range others {
		if item.Checked {
			t.Fatalf("other user should be unaffected, item %d checked", item.ID)
		}
	}
}

func TestGoBagRepository_SetCheckedAtIgnoresOlderRevision(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewGoBagRepository(db)
	ctx := context.Background()

	applied, err := repo.SetCheckedAt(ctx, 7, 1, false, 20)
	if err != nil || !applied {
		t.Fatalf("expected newer write to apply, applied=%v err=%v", applied, err)
	}
	applied, err = repo.SetCheckedAt(ctx, 7, 1, true, 10)
	if err != nil {
		t.Fatalf("SetCheckedAt failed: %v", err)
	}
	if applied {
		t.Fatal("expected older revision to be ignored")
	}
	applied, err = repo.SetCheckedAt(ctx, 7, 1, true, 20)
	if err != nil || applied {
		t.Fatalf("expected equal revision to be ignored, applied=%v err=%v", applied, err)
	}

	items, err := repo.Items(ctx, 7)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	for _, item := range items {
		if item.ID == 1 && item.Checked {
			t.Fatal("stored state should come from the newest revision")
		}
	}
}

func TestGoBagRepository_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewGoBagRepository(db)
	if err := repo.SetChecked(context.Background(), 7, 99, true); !errors.Is(err, ErrUnknownGoBagItem) {
		t.Fatalf("expected ErrUnknownGoBagItem, got %v", err)
	}
	if _, err := repo.SetCheckedAt(context.Background(), 7, 99, true, 1); !errors.Is(err, ErrUnknownGoBagItem) {
		t.Fatalf("expected ErrUnknownGoBagItem, got %v", err)
	}
}

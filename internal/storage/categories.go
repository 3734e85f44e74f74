package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/model"
)

const categoryColumns = `id, owner_id, name, category_type, color, created_at`

// ListCategories returns the owner's user-defined categories, ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context, ownerID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		scopedSelect(categoryColumns, "categories", "ORDER BY name"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *cat)
	}

	slog.Debug("retrieved categories", "owner", ownerID, "count", len(categories))
	return categories, rows.Err()
}

// GetCategoryByName returns a category by its name, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name, ownerID string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		scopedSelect(categoryColumns, "categories", "AND name = ?"), ownerID, name)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CreateCategory inserts a new user-defined category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	category.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, owner_id, name, category_type, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		category.ID,
		category.OwnerID,
		category.Name,
		string(category.Type),
		category.Color,
		category.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, category.Name)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	slog.Info("created category", "name", category.Name, "type", category.Type)
	return nil
}

// DeleteCategory removes a user-defined category. Transactions keep their
// free-text category string; only the label record is deleted.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id, ownerID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		scopedExec("DELETE FROM categories", "AND id = ?"), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanCategory(row scanner) (*model.Category, error) {
	var cat model.Category
	var color sql.NullString
	var catType string

	err := row.Scan(
		&cat.ID,
		&cat.OwnerID,
		&cat.Name,
		&catType,
		&color,
		&cat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	cat.Type = model.TransactionType(catType)
	if color.Valid {
		cat.Color = color.String
	}
	return &cat, nil
}

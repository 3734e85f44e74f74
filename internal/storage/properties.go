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

const propertyColumns = `id, owner_id, name, address, category, bedrooms, bathrooms,
	max_guests, purchase_price, purchase_date, notes, created_at, updated_at`

// ListProperties returns all properties belonging to the owner, ordered by name.
func (s *SQLiteStorage) ListProperties(ctx context.Context, ownerID string) ([]model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		scopedSelect(propertyColumns, "properties", "ORDER BY name"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var properties []model.Property
	for rows.Next() {
		p, scanErr := scanProperty(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		properties = append(properties, *p)
	}

	slog.Debug("retrieved properties", "owner", ownerID, "count", len(properties))
	return properties, rows.Err()
}

// GetPropertyByID returns a single owner-scoped property by ID.
func (s *SQLiteStorage) GetPropertyByID(ctx context.Context, id, ownerID string) (*model.Property, error) {
	return s.getProperty(ctx, "AND id = ?", id, ownerID)
}

// GetPropertyByName returns a single owner-scoped property by display name.
func (s *SQLiteStorage) GetPropertyByName(ctx context.Context, name, ownerID string) (*model.Property, error) {
	return s.getProperty(ctx, "AND name = ?", name, ownerID)
}

func (s *SQLiteStorage) getProperty(ctx context.Context, cond, key, ownerID string) (*model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		scopedSelect(propertyColumns, "properties", cond), ownerID, key)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProperty inserts a new property.
func (s *SQLiteStorage) CreateProperty(ctx context.Context, property *model.Property) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProperty(property); err != nil {
		return err
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (
			id, owner_id, name, address, category, bedrooms, bathrooms,
			max_guests, purchase_price, purchase_date, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		property.ID,
		property.OwnerID,
		property.Name,
		property.Address,
		string(property.Category),
		property.Bedrooms,
		property.Bathrooms,
		property.MaxGuests,
		property.PurchasePrice,
		property.PurchaseDate,
		property.Notes,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: property %q", common.ErrDuplicateEntry, property.Name)
		}
		return fmt.Errorf("failed to insert property: %w", err)
	}

	slog.Info("created property", "id", property.ID, "name", property.Name)
	return nil
}

// UpdateProperty updates an existing property in place. The owner scope is
// part of the WHERE clause, so updating another owner's row is a not-found.
func (s *SQLiteStorage) UpdateProperty(ctx context.Context, property *model.Property) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProperty(property); err != nil {
		return err
	}

	property.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx, scopedExec(`
		UPDATE properties SET
			name = ?, address = ?, category = ?, bedrooms = ?, bathrooms = ?,
			max_guests = ?, purchase_price = ?, purchase_date = ?, notes = ?, updated_at = ?`,
		"AND id = ?"),
		property.Name,
		property.Address,
		string(property.Category),
		property.Bedrooms,
		property.Bathrooms,
		property.MaxGuests,
		property.PurchasePrice,
		property.PurchaseDate,
		property.Notes,
		property.UpdatedAt,
		property.OwnerID,
		property.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteProperty removes a property. Bookings and transactions referencing
// it are removed by the schema's cascade rule.
func (s *SQLiteStorage) DeleteProperty(ctx context.Context, id, ownerID string) error {
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
		scopedExec("DELETE FROM properties", "AND id = ?"), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	slog.Info("deleted property", "id", id)
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for single-row scans.
type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (*model.Property, error) {
	var p model.Property
	var address, notes sql.NullString
	var purchaseDate sql.NullTime
	var category string

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&address,
		&category,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.MaxGuests,
		&p.PurchasePrice,
		&purchaseDate,
		&notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan property: %w", err)
	}

	p.Category = model.PropertyCategory(category)
	if address.Valid {
		p.Address = address.String
	}
	if notes.Valid {
		p.Notes = notes.String
	}
	if purchaseDate.Valid {
		d := purchaseDate.Time
		p.PurchaseDate = &d
	}
	return &p, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/model"
	"github.com/bnbmargins/bnbmargins/internal/service"
)

const transactionColumns = `id, owner_id, property_id, booking_id, transaction_type,
	category, amount, description, date, created_at`

// ListTransactions returns the owner's transactions matching the filter,
// oldest first. A nil filter date leaves that side of the range open.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, ownerID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	extra := ""
	args := []any{ownerID}

	if filter.StartDate != nil {
		extra += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		extra += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.PropertyID != "" {
		extra += " AND property_id = ?"
		args = append(args, filter.PropertyID)
	}
	if filter.Type != "" {
		extra += " AND transaction_type = ?"
		args = append(args, string(filter.Type))
	}
	extra += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx,
		scopedSelect(transactionColumns, "transactions", extra), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		txns = append(txns, *txn)
	}

	slog.Debug("retrieved transactions", "owner", ownerID, "count", len(txns))
	return txns, rows.Err()
}

// GetTransactionByID retrieves a single owner-scoped transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id, ownerID string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		scopedSelect(transactionColumns, "transactions", "AND id = ?"), ownerID, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateTransaction inserts a single transaction.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	txn.CreatedAt = time.Now()
	if _, err := s.db.ExecContext(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateTransactions inserts multiple transactions in one database
// transaction, used by the OFX importer and the seeder.
func (s *SQLiteStorage) CreateTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(txns); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertTransactionQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i := range txns {
		txns[i].CreatedAt = now
		if _, err := stmt.ExecContext(ctx, transactionArgs(&txns[i])...); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txns[i].ID, err)
		}
	}

	return tx.Commit()
}

// UpdateTransaction updates a transaction's mutable fields. The type is
// fixed at creation and cannot change.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, scopedExec(`
		UPDATE transactions SET
			category = ?, amount = ?, description = ?, date = ?`,
		"AND id = ?"),
		txn.Category,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.OwnerID,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
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

// DeleteTransaction removes a transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id, ownerID string) error {
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
		scopedExec("DELETE FROM transactions", "AND id = ?"), ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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

// GetTransactionDateBounds returns the earliest and latest transaction
// dates for the owner. common.ErrNotFound when there are none.
func (s *SQLiteStorage) GetTransactionDateBounds(ctx context.Context, ownerID string) (time.Time, time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return time.Time{}, time.Time{}, err
	}

	var earliest, latest sql.NullTime
	err := s.db.QueryRowContext(ctx,
		scopedSelect("MIN(date), MAX(date)", "transactions", ""), ownerID).
		Scan(&earliest, &latest)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to get transaction date bounds: %w", err)
	}
	if !earliest.Valid || !latest.Valid {
		return time.Time{}, time.Time{}, common.ErrNotFound
	}
	return earliest.Time, latest.Time, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (
		id, owner_id, property_id, booking_id, transaction_type,
		category, amount, description, date, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func transactionArgs(txn *model.Transaction) []any {
	var bookingID any
	if txn.BookingID != "" {
		bookingID = txn.BookingID
	}
	return []any{
		txn.ID,
		txn.OwnerID,
		txn.PropertyID,
		bookingID,
		string(txn.Type),
		txn.Category,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.CreatedAt,
	}
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var bookingID, description sql.NullString
	var txType string

	err := row.Scan(
		&txn.ID,
		&txn.OwnerID,
		&txn.PropertyID,
		&bookingID,
		&txType,
		&txn.Category,
		&txn.Amount,
		&description,
		&txn.Date,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(txType)
	if bookingID.Valid {
		txn.BookingID = bookingID.String
	}
	if description.Valid {
		txn.Description = description.String
	}
	return &txn, nil
}

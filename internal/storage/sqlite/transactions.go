package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

// CreateTransaction persists a new transaction and its payer split.
func (s *Store) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, couple_id, description, amount_cents, type, category, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID.String(), transaction.CoupleID.String(), transaction.Description,
		transaction.AmountCents, string(transaction.Type), transaction.Category,
		transaction.Date.Unix(), transaction.CreatedAt.Unix(), transaction.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := insertPayers(ctx, tx, transaction); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveTransaction updates an existing transaction, replacing its payer split.
func (s *Store) SaveTransaction(ctx context.Context, transaction *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET description = ?, amount_cents = ?, type = ?, category = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		transaction.Description, transaction.AmountCents, string(transaction.Type),
		transaction.Category, transaction.Date.Unix(), transaction.UpdatedAt.Unix(),
		transaction.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM transaction_payers WHERE transaction_id = ?", transaction.ID.String())
	if err != nil {
		return fmt.Errorf("failed to clear transaction payers: %w", err)
	}

	if err := insertPayers(ctx, tx, transaction); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTransaction removes a transaction by ID; payer rows cascade.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by ID, or (nil, nil).
func (s *Store) FindTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return s.scanTransaction(ctx, s.db.QueryRowContext(ctx,
		`SELECT id, couple_id, description, amount_cents, type, category, date, created_at, updated_at
		 FROM transactions WHERE id = ?`, id.String()))
}

// FindTransactionsByCoupleID lists a couple's transactions, date-ordered,
// narrowed by the filters and windowed by page/limit.
func (s *Store) FindTransactionsByCoupleID(ctx context.Context, coupleID uuid.UUID, filters storage.TransactionFilters) ([]*models.Transaction, error) {
	var (
		conds = []string{"couple_id = ?", "date <= ?"}
		args  = []any{coupleID.String(), filters.EndDate.Unix()}
	)
	if !filters.StartDate.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, filters.StartDate.Unix())
	}
	if filters.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(filters.Type))
	}
	if filters.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filters.Category)
	}
	if filters.UserID != uuid.Nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM transaction_payers p WHERE p.transaction_id = transactions.id AND p.user_id = ?)")
		args = append(args, filters.UserID.String())
	}

	query := `SELECT id, couple_id, description, amount_cents, type, category, date, created_at, updated_at
		 FROM transactions WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY date`
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Page*filters.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		transaction, err := s.scanTransaction(ctx, rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func insertPayers(ctx context.Context, tx *sql.Tx, transaction *models.Transaction) error {
	for i, payer := range transaction.PaidBy {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO transaction_payers (transaction_id, user_id, amount_cents, position) VALUES (?, ?, ?, ?)",
			transaction.ID.String(), payer.UserID.String(), payer.AmountCents, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction payer: %w", err)
		}
	}
	return nil
}

func (s *Store) scanTransaction(ctx context.Context, row rowScanner) (*models.Transaction, error) {
	var (
		rawID, rawCoupleID         string
		typ                        string
		date, createdAt, updatedAt int64
		transaction                models.Transaction
	)
	err := row.Scan(&rawID, &rawCoupleID, &transaction.Description, &transaction.AmountCents,
		&typ, &transaction.Category, &date, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if transaction.ID, err = parseID(rawID); err != nil {
		return nil, err
	}
	if transaction.CoupleID, err = parseID(rawCoupleID); err != nil {
		return nil, err
	}
	transaction.Type = models.TransactionType(typ)
	transaction.Date = unixTime(date)
	transaction.CreatedAt = unixTime(createdAt)
	transaction.UpdatedAt = unixTime(updatedAt)

	payerRows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount_cents FROM transaction_payers WHERE transaction_id = ? ORDER BY position",
		transaction.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction payers: %w", err)
	}
	defer payerRows.Close()

	for payerRows.Next() {
		var (
			rawUserID string
			payer     models.Payer
		)
		if err := payerRows.Scan(&rawUserID, &payer.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan transaction payer: %w", err)
		}
		if payer.UserID, err = parseID(rawUserID); err != nil {
			return nil, err
		}
		transaction.PaidBy = append(transaction.PaidBy, payer)
	}
	return &transaction, payerRows.Err()
}

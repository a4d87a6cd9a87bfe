package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/calculator"
	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

// TransactionService implements transaction creation, lookup and listing.
type TransactionService struct {
	users        storage.UserStore
	couples      storage.CoupleStore
	transactions storage.TransactionStore
}

// NewTransactionService creates a TransactionService with the given stores.
func NewTransactionService(users storage.UserStore, couples storage.CoupleStore, transactions storage.TransactionStore) *TransactionService {
	return &TransactionService{users: users, couples: couples, transactions: transactions}
}

// CreateTransactionInput is the request for CreateTransaction.
type CreateTransactionInput struct {
	CoupleID    uuid.UUID
	Description string
	AmountCents int64
	Type        models.TransactionType
	Category    string
	Date        time.Time
	PaidBy      []models.Payer
}

// CreateTransaction records a transaction against a couple.
//
// Every payer must be a current couple member, and the payer amounts must
// sum exactly to the total; either violation fails with
// InvalidTransactionError and nothing is persisted. The membership check
// runs before the sum check.
func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	couple, err := s.couples.FindCoupleByID(ctx, in.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("find couple: %w", err)
	}
	if couple == nil {
		return nil, ErrResourceNotFound
	}

	for _, payer := range in.PaidBy {
		if !couple.IsMember(payer.UserID) {
			return nil, &InvalidTransactionError{Reason: "one or more payers are not part of the couple"}
		}
	}

	transaction := models.NewTransaction(
		couple.ID,
		in.Description,
		in.AmountCents,
		in.Type,
		in.Category,
		in.Date,
		in.PaidBy,
	)

	if !transaction.IsTotalPaidValid() {
		return nil, &InvalidTransactionError{Reason: "total paid does not match the transaction amount"}
	}

	if err := s.transactions.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	slog.Info("transaction created",
		"transaction_id", transaction.ID,
		"couple_id", couple.ID,
		"type", transaction.Type,
		"amount_cents", transaction.AmountCents,
	)

	return transaction, nil
}

// GetTransaction retrieves a single transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactions.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if transaction == nil {
		return nil, ErrResourceNotFound
	}
	return transaction, nil
}

// FetchTransactions lists a couple's transactions, date-ordered and
// windowed by the filters' page/limit.
//
// When filters.UserID is set, the requesting user must exist and belong
// to the couple (ErrResourceNotFound otherwise), and the listing narrows
// to transactions that user paid toward.
func (s *TransactionService) FetchTransactions(ctx context.Context, coupleID uuid.UUID, filters storage.TransactionFilters) ([]*models.Transaction, error) {
	if filters.UserID == uuid.Nil {
		transactions, err := s.transactions.FindTransactionsByCoupleID(ctx, coupleID, filters)
		if err != nil {
			return nil, fmt.Errorf("find transactions: %w", err)
		}
		return transactions, nil
	}

	user, err := s.users.FindUserByID(ctx, filters.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || user.CoupleID != coupleID {
		return nil, ErrResourceNotFound
	}

	transactions, err := s.transactions.FindTransactionsByCoupleID(ctx, coupleID, filters)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	return transactions, nil
}

// Summarize aggregates a couple's transactions up to filters.EndDate
// (optionally from filters.StartDate, narrowed by type/category) into
// totals, a per-category breakdown and per-member balances. Pagination
// does not apply; every matching transaction counts.
func (s *TransactionService) Summarize(ctx context.Context, coupleID uuid.UUID, filters storage.TransactionFilters) (calculator.Summary, error) {
	couple, err := s.couples.FindCoupleByID(ctx, coupleID)
	if err != nil {
		return calculator.Summary{}, fmt.Errorf("find couple: %w", err)
	}
	if couple == nil {
		return calculator.Summary{}, ErrResourceNotFound
	}

	filters.Page = 0
	filters.Limit = 0
	filters.UserID = uuid.Nil
	transactions, err := s.transactions.FindTransactionsByCoupleID(ctx, coupleID, filters)
	if err != nil {
		return calculator.Summary{}, fmt.Errorf("find transactions: %w", err)
	}

	return calculator.Summarize(transactions, couple.Members), nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies the signed nature of a transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Payer is one member's contribution toward a transaction's total.
type Payer struct {
	UserID      uuid.UUID
	AmountCents int64
}

// Transaction is an income or expense recorded against a couple, split
// across one or more paying members. The per-payer amounts must add up
// exactly to AmountCents; creation enforces this via IsTotalPaidValid.
type Transaction struct {
	ID          uuid.UUID
	CoupleID    uuid.UUID
	Description string

	// AmountCents is the total amount in minor currency units.
	AmountCents int64

	Type     TransactionType
	Category string

	// Date is when the transaction occurred, not when it was recorded.
	Date time.Time

	// PaidBy is the ordered payer split.
	PaidBy []Payer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a transaction with a fresh ID and timestamps.
// It does not validate the payer split; callers check IsTotalPaidValid
// after construction.
func NewTransaction(coupleID uuid.UUID, description string, amountCents int64, typ TransactionType, category string, date time.Time, paidBy []Payer) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.New(),
		CoupleID:    coupleID,
		Description: description,
		AmountCents: amountCents,
		Type:        typ,
		Category:    category,
		Date:        date,
		PaidBy:      paidBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TotalPaid sums the per-payer contributions.
func (t *Transaction) TotalPaid() int64 {
	var total int64
	for _, p := range t.PaidBy {
		total += p.AmountCents
	}
	return total
}

// IsTotalPaidValid reports whether the payer contributions add up exactly
// to the transaction amount. Exact integer equality, no tolerance.
func (t *Transaction) IsTotalPaidValid() bool {
	return t.TotalPaid() == t.AmountCents
}

// AmountPaidBy returns the given user's contribution, or 0 if they are
// not among the payers.
func (t *Transaction) AmountPaidBy(userID uuid.UUID) int64 {
	for _, p := range t.PaidBy {
		if p.UserID == userID {
			return p.AmountCents
		}
	}
	return 0
}

// UpdateDescription replaces the free-text description.
func (t *Transaction) UpdateDescription(description string) {
	t.Description = description
	t.touch()
}

// UpdateAmount replaces the total amount. The payer split is not
// re-validated here; it is only checked at creation time.
func (t *Transaction) UpdateAmount(amountCents int64) {
	t.AmountCents = amountCents
	t.touch()
}

func (t *Transaction) touch() {
	t.UpdatedAt = time.Now().UTC()
}

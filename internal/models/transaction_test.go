package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTransactionTotalPaid(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	tx := NewTransaction(uuid.New(), "groceries", 5000, TransactionExpense, "food", time.Now(),
		[]Payer{{UserID: a, AmountCents: 3000}, {UserID: b, AmountCents: 2000}})

	if got := tx.TotalPaid(); got != 5000 {
		t.Errorf("expected total paid 5000, got %d", got)
	}
	if !tx.IsTotalPaidValid() {
		t.Error("a split summing to the amount should be valid")
	}
}

func TestTransactionTotalPaidMismatch(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int64
		paidBy      []Payer
	}{
		{"under", 5000, []Payer{{UserID: uuid.New(), AmountCents: 4999}}},
		{"over", 5000, []Payer{{UserID: uuid.New(), AmountCents: 5001}}},
		{"no payers", 5000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewTransaction(uuid.New(), "rent", tt.amountCents, TransactionExpense, "housing", time.Now(), tt.paidBy)
			if tx.IsTotalPaidValid() {
				t.Errorf("split %v should not be valid for amount %d", tt.paidBy, tt.amountCents)
			}
		})
	}
}

func TestTransactionZeroAmountNoPayersIsValid(t *testing.T) {
	tx := NewTransaction(uuid.New(), "placeholder", 0, TransactionExpense, "misc", time.Now(), nil)
	if !tx.IsTotalPaidValid() {
		t.Error("a zero amount with no payers sums exactly and should be valid")
	}
}

func TestTransactionAmountPaidBy(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	tx := NewTransaction(uuid.New(), "dinner", 8000, TransactionExpense, "food", time.Now(),
		[]Payer{{UserID: a, AmountCents: 8000}, {UserID: b, AmountCents: 0}})

	if got := tx.AmountPaidBy(a); got != 8000 {
		t.Errorf("expected 8000 for payer a, got %d", got)
	}
	if got := tx.AmountPaidBy(b); got != 0 {
		t.Errorf("expected 0 for payer b, got %d", got)
	}
	if got := tx.AmountPaidBy(uuid.New()); got != 0 {
		t.Errorf("expected 0 for a non-payer, got %d", got)
	}
}

func TestTransactionUpdates(t *testing.T) {
	tx := NewTransaction(uuid.New(), "old", 1000, TransactionIncome, "salary", time.Now(), nil)

	tx.UpdateDescription("new")
	if tx.Description != "new" {
		t.Errorf("expected description %q, got %q", "new", tx.Description)
	}

	tx.UpdateAmount(2000)
	if tx.AmountCents != 2000 {
		t.Errorf("expected amount 2000, got %d", tx.AmountCents)
	}
}

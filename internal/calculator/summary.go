// Package calculator derives aggregate views from a couple's transactions.
// It is pure computation: no storage, no mutation.
package calculator

import (
	"sort"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

// CategoryAmount is an amount aggregated under one category label.
type CategoryAmount struct {
	Category    string
	AmountCents int64
}

// MemberBalance is one member's position within the couple.
//
// Expenses are shared equally between members regardless of who paid;
// NetCents = TotalPaidCents - ShareCents, so a positive value means the
// member is owed money by their partner.
type MemberBalance struct {
	UserID         uuid.UUID
	TotalPaidCents int64
	ShareCents     int64
	NetCents       int64
}

// Summary is the aggregate view of a couple's transactions.
type Summary struct {
	TotalIncomeCents  int64
	TotalExpenseCents int64
	ByCategory        []CategoryAmount
	Members           []MemberBalance
}

// Summarize aggregates the given transactions for a couple.
//
// Income totals are reported but excluded from the balance: only expenses
// are shared. The equal split distributes any remainder cent to the
// earlier members in join order, so member shares always sum exactly to
// the expense total.
func Summarize(transactions []*models.Transaction, memberIDs []uuid.UUID) Summary {
	var summary Summary

	byCategory := make(map[string]int64)
	paidBy := make(map[uuid.UUID]int64, len(memberIDs))

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			summary.TotalIncomeCents += t.AmountCents
		case models.TransactionExpense:
			summary.TotalExpenseCents += t.AmountCents
			byCategory[t.Category] += t.AmountCents
			for _, p := range t.PaidBy {
				paidBy[p.UserID] += p.AmountCents
			}
		}
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		summary.ByCategory = append(summary.ByCategory, CategoryAmount{
			Category:    category,
			AmountCents: byCategory[category],
		})
	}

	summary.Members = splitEqually(summary.TotalExpenseCents, memberIDs, paidBy)
	return summary
}

// splitEqually shares total across members, handing remainder cents to
// the earlier members so the shares sum exactly to total.
func splitEqually(total int64, memberIDs []uuid.UUID, paidBy map[uuid.UUID]int64) []MemberBalance {
	if len(memberIDs) == 0 {
		return nil
	}

	n := int64(len(memberIDs))
	base := total / n
	remainder := total % n

	balances := make([]MemberBalance, len(memberIDs))
	for i, id := range memberIDs {
		share := base
		if int64(i) < remainder {
			share++
		}
		balances[i] = MemberBalance{
			UserID:         id,
			TotalPaidCents: paidBy[id],
			ShareCents:     share,
			NetCents:       paidBy[id] - share,
		}
	}
	return balances
}

package calculator

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

func expense(coupleID uuid.UUID, amount int64, category string, paidBy []models.Payer) *models.Transaction {
	return models.NewTransaction(coupleID, "", amount, models.TransactionExpense, category, time.Now(), paidBy)
}

func TestSummarizeEmpty(t *testing.T) {
	members := []uuid.UUID{uuid.New(), uuid.New()}
	summary := Summarize(nil, members)

	if summary.TotalIncomeCents != 0 || summary.TotalExpenseCents != 0 {
		t.Errorf("expected zero totals, got income %d expense %d", summary.TotalIncomeCents, summary.TotalExpenseCents)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("expected no categories, got %v", summary.ByCategory)
	}
	if len(summary.Members) != 2 {
		t.Fatalf("expected balances for both members, got %d", len(summary.Members))
	}
	for _, m := range summary.Members {
		if m.TotalPaidCents != 0 || m.ShareCents != 0 || m.NetCents != 0 {
			t.Errorf("expected zero balance, got %+v", m)
		}
	}
}

func TestSummarizeIncomeExcludedFromBalance(t *testing.T) {
	coupleID := uuid.New()
	ana, bia := uuid.New(), uuid.New()

	income := models.NewTransaction(coupleID, "salary", 100000, models.TransactionIncome, "salary", time.Now(),
		[]models.Payer{{UserID: ana, AmountCents: 100000}})
	summary := Summarize([]*models.Transaction{income}, []uuid.UUID{ana, bia})

	if summary.TotalIncomeCents != 100000 {
		t.Errorf("expected income 100000, got %d", summary.TotalIncomeCents)
	}
	if summary.TotalExpenseCents != 0 {
		t.Errorf("income must not count as expense, got %d", summary.TotalExpenseCents)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("income must not appear in the category breakdown, got %v", summary.ByCategory)
	}
	for _, m := range summary.Members {
		if m.NetCents != 0 {
			t.Errorf("income must not move balances, got %+v", m)
		}
	}
}

func TestSummarizeBalances(t *testing.T) {
	coupleID := uuid.New()
	ana, bia := uuid.New(), uuid.New()
	members := []uuid.UUID{ana, bia}

	transactions := []*models.Transaction{
		expense(coupleID, 10000, "food", []models.Payer{{UserID: ana, AmountCents: 10000}}),
		expense(coupleID, 6000, "transport", []models.Payer{{UserID: bia, AmountCents: 6000}}),
	}
	summary := Summarize(transactions, members)

	if summary.TotalExpenseCents != 16000 {
		t.Fatalf("expected expenses 16000, got %d", summary.TotalExpenseCents)
	}

	anaBalance, biaBalance := summary.Members[0], summary.Members[1]
	if anaBalance.ShareCents != 8000 || biaBalance.ShareCents != 8000 {
		t.Errorf("expected equal shares of 8000, got %d and %d", anaBalance.ShareCents, biaBalance.ShareCents)
	}
	if anaBalance.NetCents != 2000 {
		t.Errorf("expected ana net +2000, got %d", anaBalance.NetCents)
	}
	if biaBalance.NetCents != -2000 {
		t.Errorf("expected bia net -2000, got %d", biaBalance.NetCents)
	}
}

func TestSummarizeOddRemainderGoesToEarlierMember(t *testing.T) {
	coupleID := uuid.New()
	ana, bia := uuid.New(), uuid.New()

	transactions := []*models.Transaction{
		expense(coupleID, 101, "misc", []models.Payer{{UserID: ana, AmountCents: 101}}),
	}
	summary := Summarize(transactions, []uuid.UUID{ana, bia})

	anaBalance, biaBalance := summary.Members[0], summary.Members[1]
	if anaBalance.ShareCents != 51 || biaBalance.ShareCents != 50 {
		t.Errorf("expected shares 51/50, got %d/%d", anaBalance.ShareCents, biaBalance.ShareCents)
	}
	if got := anaBalance.ShareCents + biaBalance.ShareCents; got != 101 {
		t.Errorf("shares must sum exactly to the expense total, got %d", got)
	}
}

func TestSummarizeCategoriesSorted(t *testing.T) {
	coupleID := uuid.New()
	ana := uuid.New()

	transactions := []*models.Transaction{
		expense(coupleID, 100, "transport", []models.Payer{{UserID: ana, AmountCents: 100}}),
		expense(coupleID, 200, "food", []models.Payer{{UserID: ana, AmountCents: 200}}),
		expense(coupleID, 300, "food", []models.Payer{{UserID: ana, AmountCents: 300}}),
	}
	summary := Summarize(transactions, []uuid.UUID{ana})

	if len(summary.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summary.ByCategory))
	}
	if summary.ByCategory[0].Category != "food" || summary.ByCategory[0].AmountCents != 500 {
		t.Errorf("unexpected first category %+v", summary.ByCategory[0])
	}
	if summary.ByCategory[1].Category != "transport" || summary.ByCategory[1].AmountCents != 100 {
		t.Errorf("unexpected second category %+v", summary.ByCategory[1])
	}
}

func TestSummarizeNoMembers(t *testing.T) {
	summary := Summarize(nil, nil)
	if summary.Members != nil {
		t.Errorf("expected nil balances for no members, got %v", summary.Members)
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/calculator"
	"github.com/nossagrana/nossagrana/internal/httpjson"
	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

type categoryAmountResponse struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
}

type memberBalanceResponse struct {
	UserID         string `json:"user_id"`
	TotalPaidCents int64  `json:"total_paid_cents"`
	ShareCents     int64  `json:"share_cents"`
	NetCents       int64  `json:"net_cents"`
}

type summaryResponse struct {
	TotalIncomeCents  int64                    `json:"total_income_cents"`
	TotalExpenseCents int64                    `json:"total_expense_cents"`
	ByCategory        []categoryAmountResponse `json:"by_category"`
	Members           []memberBalanceResponse  `json:"members"`
}

func newSummaryResponse(summary calculator.Summary) summaryResponse {
	resp := summaryResponse{
		TotalIncomeCents:  summary.TotalIncomeCents,
		TotalExpenseCents: summary.TotalExpenseCents,
	}
	for _, c := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryAmountResponse{
			Category:    c.Category,
			AmountCents: c.AmountCents,
		})
	}
	for _, m := range summary.Members {
		resp.Members = append(resp.Members, memberBalanceResponse{
			UserID:         m.UserID.String(),
			TotalPaidCents: m.TotalPaidCents,
			ShareCents:     m.ShareCents,
			NetCents:       m.NetCents,
		})
	}
	return resp
}

func (a *API) coupleSummary(w http.ResponseWriter, r *http.Request) {
	coupleID, err := uuid.Parse(chi.URLParam(r, "coupleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid couple id")
		return
	}

	q := r.URL.Query()
	filters := storage.TransactionFilters{EndDate: time.Now().UTC()}
	if raw := q.Get("startDate"); raw != "" {
		if filters.StartDate, err = time.Parse(time.RFC3339, raw); err != nil {
			httpjson.Error(w, http.StatusBadRequest, errInvalidQuery("startDate").Error())
			return
		}
	}
	if raw := q.Get("endDate"); raw != "" {
		if filters.EndDate, err = time.Parse(time.RFC3339, raw); err != nil {
			httpjson.Error(w, http.StatusBadRequest, errInvalidQuery("endDate").Error())
			return
		}
	}
	if raw := q.Get("type"); raw != "" {
		if raw != string(models.TransactionIncome) && raw != string(models.TransactionExpense) {
			httpjson.Error(w, http.StatusBadRequest, errInvalidQuery("type").Error())
			return
		}
		filters.Type = models.TransactionType(raw)
	}
	filters.Category = q.Get("category")

	summary, err := a.transactions.Summarize(r.Context(), coupleID, filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, newSummaryResponse(summary))
}

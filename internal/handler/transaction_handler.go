package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/httpjson"
	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/service"
	"github.com/nossagrana/nossagrana/internal/storage"
)

const (
	defaultPage  = 0
	defaultLimit = 10
)

type payerRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
}

type createTransactionRequest struct {
	Description string         `json:"description"`
	AmountCents int64          `json:"amount_cents"`
	Type        string         `json:"type"`
	Category    string         `json:"category"`
	Date        time.Time      `json:"date"`
	PaidBy      []payerRequest `json:"paid_by"`
}

type payerResponse struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
}

type transactionResponse struct {
	ID          string          `json:"id"`
	CoupleID    string          `json:"couple_id"`
	Description string          `json:"description"`
	AmountCents int64           `json:"amount_cents"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	PaidBy      []payerResponse `json:"paid_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newTransactionResponse(t *models.Transaction) transactionResponse {
	paidBy := make([]payerResponse, len(t.PaidBy))
	for i, p := range t.PaidBy {
		paidBy[i] = payerResponse{UserID: p.UserID.String(), AmountCents: p.AmountCents}
	}
	return transactionResponse{
		ID:          t.ID.String(),
		CoupleID:    t.CoupleID.String(),
		Description: t.Description,
		AmountCents: t.AmountCents,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        t.Date,
		PaidBy:      paidBy,
		CreatedAt:   t.CreatedAt,
	}
}

func (a *API) createTransaction(w http.ResponseWriter, r *http.Request) {
	coupleID, err := uuid.Parse(chi.URLParam(r, "coupleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid couple id")
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type != string(models.TransactionIncome) && req.Type != string(models.TransactionExpense) {
		httpjson.Error(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if len(req.PaidBy) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "paid_by must not be empty")
		return
	}

	paidBy := make([]models.Payer, len(req.PaidBy))
	for i, p := range req.PaidBy {
		payerID, err := uuid.Parse(p.UserID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid payer user id")
			return
		}
		paidBy[i] = models.Payer{UserID: payerID, AmountCents: p.AmountCents}
	}

	transaction, err := a.transactions.CreateTransaction(r.Context(), service.CreateTransactionInput{
		CoupleID:    coupleID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
		PaidBy:      paidBy,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, newTransactionResponse(transaction))
}

func (a *API) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	transaction, err := a.transactions.GetTransaction(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, newTransactionResponse(transaction))
}

func (a *API) fetchTransactions(w http.ResponseWriter, r *http.Request) {
	coupleID, err := uuid.Parse(chi.URLParam(r, "coupleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid couple id")
		return
	}

	filters, err := parseTransactionFilters(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := a.transactions.FetchTransactions(r.Context(), coupleID, filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	responses := make([]transactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = newTransactionResponse(t)
	}

	httpjson.Write(w, http.StatusOK, map[string][]transactionResponse{"transactions": responses})
}

func parseTransactionFilters(r *http.Request) (storage.TransactionFilters, error) {
	q := r.URL.Query()
	filters := storage.TransactionFilters{
		Page:    defaultPage,
		Limit:   defaultLimit,
		EndDate: time.Now().UTC(),
	}

	var err error
	if raw := q.Get("page"); raw != "" {
		if filters.Page, err = strconv.Atoi(raw); err != nil || filters.Page < 0 {
			return filters, errInvalidQuery("page")
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if filters.Limit, err = strconv.Atoi(raw); err != nil || filters.Limit <= 0 {
			return filters, errInvalidQuery("limit")
		}
	}
	if raw := q.Get("type"); raw != "" {
		if raw != string(models.TransactionIncome) && raw != string(models.TransactionExpense) {
			return filters, errInvalidQuery("type")
		}
		filters.Type = models.TransactionType(raw)
	}
	filters.Category = q.Get("category")
	if raw := q.Get("startDate"); raw != "" {
		if filters.StartDate, err = time.Parse(time.RFC3339, raw); err != nil {
			return filters, errInvalidQuery("startDate")
		}
	}
	if raw := q.Get("endDate"); raw != "" {
		if filters.EndDate, err = time.Parse(time.RFC3339, raw); err != nil {
			return filters, errInvalidQuery("endDate")
		}
	}
	if raw := q.Get("userId"); raw != "" {
		if filters.UserID, err = uuid.Parse(raw); err != nil {
			return filters, errInvalidQuery("userId")
		}
	}
	return filters, nil
}

func errInvalidQuery(param string) error {
	return fmt.Errorf("invalid query parameter: %s", param)
}

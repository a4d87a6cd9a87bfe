// Package handler exposes the REST API. Each handler parses and validates
// the request, invokes a service workflow, and maps the typed failure to a
// wire status. No domain rules live here.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nossagrana/nossagrana/internal/auth"
	"github.com/nossagrana/nossagrana/internal/httpjson"
	"github.com/nossagrana/nossagrana/internal/middleware"
	"github.com/nossagrana/nossagrana/internal/service"
)

// API aggregates the handlers and their dependencies.
type API struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	couples       *service.CoupleService
	invitations   *service.InvitationService
	transactions  *service.TransactionService
}

// New creates the API with the given collaborators.
func New(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	couples *service.CoupleService,
	invitations *service.InvitationService,
	transactions *service.TransactionService,
) *API {
	return &API{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		couples:       couples,
		invitations:   invitations,
		transactions:  transactions,
	}
}

// Router builds the chi router with the full middleware stack.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Post("/users", a.registerUser)
	r.Post("/sessions", a.createSession)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(a.jwtManager))

		r.Post("/couples", a.createCouple)
		r.Post("/couples/{coupleID}/invites", a.inviteUser)
		r.Patch("/couples/invites/answers/{token}", a.answerInvite)
		r.Post("/couples/{coupleID}/transactions", a.createTransaction)
		r.Get("/couples/{coupleID}/transactions", a.fetchTransactions)
		r.Get("/couples/{coupleID}/summary", a.coupleSummary)
		r.Get("/transactions/{transactionID}", a.getTransaction)
	})

	return r
}

// writeServiceError maps a workflow failure to its wire status.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		coupleExists       *service.CoupleExistsError
		invalidTransaction *service.InvalidTransactionError
	)
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAllowed):
		httpjson.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotCoupleMember):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvitationAlreadyAnswered),
		errors.Is(err, service.ErrUserAlreadyInCouple):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &coupleExists):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &invalidTransaction),
		errors.Is(err, service.ErrInvalidInvitationAnswer):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

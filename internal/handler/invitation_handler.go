package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/httpjson"
	"github.com/nossagrana/nossagrana/internal/middleware"
	"github.com/nossagrana/nossagrana/internal/service"
)

type inviteUserRequest struct {
	InviteeEmail string `json:"invitee_email"`
}

type invitationResponse struct {
	ID           string    `json:"id"`
	CoupleID     string    `json:"couple_id"`
	InviteeEmail string    `json:"invitee_email"`
	Token        string    `json:"token"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *API) inviteUser(w http.ResponseWriter, r *http.Request) {
	coupleID, err := uuid.Parse(chi.URLParam(r, "coupleID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid couple id")
		return
	}

	var req inviteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InviteeEmail == "" {
		httpjson.Error(w, http.StatusBadRequest, "invitee_email is required")
		return
	}

	inviterID := middleware.GetUserID(r.Context())

	invitation, err := a.invitations.Invite(r.Context(), inviterID, coupleID, req.InviteeEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, invitationResponse{
		ID:           invitation.ID.String(),
		CoupleID:     invitation.CoupleID.String(),
		InviteeEmail: invitation.InviteeEmail,
		Token:        invitation.Token,
		Status:       string(invitation.Status),
		CreatedAt:    invitation.CreatedAt,
	})
}

type answerInviteRequest struct {
	Answer string `json:"answer"`
}

func (a *API) answerInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req answerInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())

	couple, err := a.invitations.Answer(r.Context(), token, userID, service.InvitationAnswer(req.Answer))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A rejection has no payload.
	if couple == nil {
		httpjson.Write(w, http.StatusNoContent, nil)
		return
	}

	httpjson.Write(w, http.StatusOK, newCoupleResponse(couple))
}

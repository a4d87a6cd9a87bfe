package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nossagrana/nossagrana/internal/httpjson"
	"github.com/nossagrana/nossagrana/internal/middleware"
	"github.com/nossagrana/nossagrana/internal/models"
)

type createCoupleRequest struct {
	Name string `json:"name"`
}

type coupleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func newCoupleResponse(couple *models.Couple) coupleResponse {
	members := make([]string, len(couple.Members))
	for i, id := range couple.Members {
		members[i] = id.String()
	}
	return coupleResponse{
		ID:        couple.ID.String(),
		Name:      couple.Name,
		Members:   members,
		CreatedAt: couple.CreatedAt,
	}
}

func (a *API) createCouple(w http.ResponseWriter, r *http.Request) {
	var req createCoupleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	userID := middleware.GetUserID(r.Context())

	couple, err := a.couples.CreateCouple(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, newCoupleResponse(couple))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nossagrana/nossagrana/internal/auth"
	"github.com/nossagrana/nossagrana/internal/httpjson"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *API) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := a.authenticator.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			httpjson.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			writeServiceError(w, err)
		}
		return
	}

	httpjson.Write(w, http.StatusCreated, userResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	})
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createSessionResponse struct {
	AccessToken string `json:"access_token"`
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httpjson.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	token, err := a.jwtManager.Generate(user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, createSessionResponse{AccessToken: token})
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/auth"
	"github.com/nossagrana/nossagrana/internal/models"
)

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	user := models.NewUser("Ana", "ana@example.com", "hash")

	var gotUserID uuid.UUID
	var gotEmail string
	handler := RequireAuth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := jwtManager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, gotUserID)
		}
		if gotEmail != user.Email {
			t.Errorf("expected email %q, got %q", user.Email, gotEmail)
		}
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserID(context.Background(), userID)
	if got := GetUserID(ctx); got != userID {
		t.Errorf("expected %s, got %s", userID, got)
	}
	if got := GetUserID(context.Background()); got != uuid.Nil {
		t.Errorf("expected uuid.Nil on an empty context, got %s", got)
	}
}

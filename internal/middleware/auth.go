// Package middleware provides the HTTP middleware stack: JWT
// authentication, request logging and Prometheus metrics.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/auth"
	"github.com/nossagrana/nossagrana/internal/httpjson"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey is the context key for the authenticated user ID.
	userIDKey contextKey = "user_id"
	// emailKey is the context key for the authenticated user's email.
	emailKey contextKey = "email"
)

// GetUserID extracts the authenticated user ID from the context.
// Returns uuid.Nil if not found.
func GetUserID(ctx context.Context) uuid.UUID {
	userID, _ := ctx.Value(userIDKey).(uuid.UUID)
	return userID
}

// GetEmail extracts the authenticated user's email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// RequireAuth validates the Bearer token on every request and adds the
// user ID and email to the request context. Requests without a valid
// token get 401.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpjson.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				httpjson.Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				httpjson.Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			userID, err := claims.ParseUserID()
			if err != nil {
				httpjson.Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a context carrying the given user ID, as RequireAuth
// would set it. Exposed for handler tests.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

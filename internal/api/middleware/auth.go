package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hugh/otp-auth/internal/api/dto"
	"github.com/hugh/otp-auth/internal/auth"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

const notAuthorized = "Not Authorized. Login Again"

// Auth validates the session token and stores the user id in the request
// context. The cookie is preferred; an Authorization bearer header is
// accepted for API clients.
func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				token = cookie.Value
			}

			if token == "" {
				authHeader := r.Header.Get("Authorization")
				if strings.HasPrefix(authHeader, "Bearer ") {
					token = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if token == "" {
				handleUnauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				handleUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// handleUnauthorized answers with the flat envelope and status 200, like
// every other handled auth outcome.
func handleUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.Fail(notAuthorized))
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID is used by tests and internal callers to fake an authenticated request.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

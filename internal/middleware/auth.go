package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/services"
)

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID stores the authenticated user's id in ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by RequireAuth.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// SessionToken reads the bearer token from the Authorization header.
func SessionToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// SocketToken is SessionToken with a fallback to the token query parameter,
// for browser WebSocket clients that cannot set headers on upgrade.
func SocketToken(r *http.Request) string {
	if token := SessionToken(r); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// RequireAuth rejects requests without a valid bearer session with 401.
func RequireAuth(sessions services.Sessions, logger *zap.Logger) func(http.Handler) http.Handler {
	return requireSession(sessions, logger, SessionToken)
}

// RequireSocketAuth is RequireAuth for the WebSocket route; it also accepts
// ?token=.
func RequireSocketAuth(sessions services.Sessions, logger *zap.Logger) func(http.Handler) http.Handler {
	return requireSession(sessions, logger, SocketToken)
}

func requireSession(sessions services.Sessions, logger *zap.Logger, tokenFrom func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFrom(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			userID, ok, err := sessions.ValidateSession(r.Context(), token)
			if err != nil {
				logger.Error("session lookup failed", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MoaeadAlhosami/STREETWEER/pkg/logger"
)

const (
	// SessionIDHeader identifies an anonymous shopper's bag.
	SessionIDHeader = "X-Session-ID"
	// UserIDHeader is set by the edge once a shopper has signed in.
	UserIDHeader = "X-User-ID"

	maxSessionIDLen = 128
)

// Identity resolves who is calling. A missing or malformed X-Session-ID is
// replaced with a fresh one, which is echoed back so the client can keep it.
// X-User-ID is trusted as-is.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			if !validSessionID(sessionID) {
				sessionID = uuid.NewString()
			}
			w.Header().Set(SessionIDHeader, sessionID)
			ctx = logger.WithSessionID(ctx, sessionID)

			if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session resolved by Identity.
func SessionIDFromContext(ctx context.Context) string {
	return logger.SessionIDFromContext(ctx)
}

// UserIDFromContext returns the signed-in user, or "" for guests.
func UserIDFromContext(ctx context.Context) string {
	return logger.UserIDFromContext(ctx)
}

// validSessionID accepts short tokens of letters, digits, '-' and '_'.
func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

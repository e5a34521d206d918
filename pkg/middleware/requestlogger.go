package middleware

import (
	"log/slog"
	"net/http"

	"github.com/MoaeadAlhosami/STREETWEER/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// correlation_id, user_id, session_id, trace_id and span_id when present.
// Mount it after RequestLogging, Tracing and Identity.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if logger.UserIDFromContext(ctx) == "" {
				if userID := r.Header.Get(UserIDHeader); userID != "" {
					ctx = logger.WithUserID(ctx, userID)
				}
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package http

import (
	"net/http"
	"strings"

	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/httputil"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/middleware"
)

// RequireUser rejects guests with 401. The user id comes from the X-User-ID
// header, which the gateway sets after authentication.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserIDFromContext(r.Context()) == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("sign in to continue"), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

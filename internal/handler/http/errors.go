package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MoaeadAlhosami/STREETWEER/pkg/httputil"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/validator"
)

// writeError renders validation failures with per-field messages and
// everything else through httputil.WriteError.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, err, logger)
}

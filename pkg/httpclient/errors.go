package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
)

const maxErrorBody = 1 << 20

// upstreamError covers the error envelopes seen from product APIs: our own
// {"error":{"code","message"}} and the flat {"message": "..."} form.
type upstreamError struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type structuredError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError consumes and closes a non-2xx response body and
// translates it into an AppError. Callers must only pass non-2xx responses.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", service, resp.StatusCode, err)
	}

	code, message := "", ""
	var env upstreamError
	if json.Unmarshal(body, &env) == nil {
		var se structuredError
		switch {
		case len(env.Error) > 0 && json.Unmarshal(env.Error, &se) == nil && se.Message != "":
			code, message = se.Code, se.Message
		case len(env.Error) > 0:
			var s string
			if json.Unmarshal(env.Error, &s) == nil {
				message = s
			}
		case env.Message != "":
			message = env.Message
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return mapUpstreamError(resp.StatusCode, code, message, service)
}

func mapUpstreamError(status int, code, message, service string) error {
	qualified := fmt.Sprintf("%s: %s", service, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(service, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperrors.Unauthorized(qualified)
	case status >= 500:
		return apperrors.ServiceUnavailable(qualified, fmt.Errorf("%s returned status %d", service, status))
	default:
		if code == "" {
			code = "UPSTREAM_ERROR"
		}
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}

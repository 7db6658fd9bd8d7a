package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := blog.Classify(err)
	resp := ErrorResponse{Error: kind.String()}

	var status int
	switch kind {
	case blog.KindForbidden:
		status = http.StatusForbidden
	case blog.KindNotFound:
		status = http.StatusNotFound
	case blog.KindValidation:
		status = http.StatusUnprocessableEntity
		var ve *blog.ValidationError
		if errors.As(err, &ve) {
			resp.Fields = ve.Fields
		}
	case blog.KindRateLimited:
		status = http.StatusTooManyRequests
		var rl *blog.RateLimitError
		if errors.As(err, &rl) {
			secs := int(math.Ceil(rl.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
	default:
		status = http.StatusInternalServerError
		logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

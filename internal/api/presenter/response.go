package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/somechocolate/tableau-embedded-analytics/internal/service"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`

	// Stack carries diagnostic detail. Only populated when the service
	// runs with the debug flag set.
	Stack string `json:"stack,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Error:         msg,
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, status)
}

// Failure writes the stable error envelope for a failed issuance:
// a fixed label, a generic human-readable message, and, only when debug is
// set, the full error chain in the stack field.
func Failure(w http.ResponseWriter, r *http.Request, label, message string, err error, debug bool) {
	correlationID, _ := r.Context().Value("correlation_id").(string)

	status := http.StatusInternalServerError
	var httpErr *service.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode
	}

	resp := ErrorResponse{
		Error:         label,
		Message:       message,
		CorrelationID: correlationID,
	}
	if debug && err != nil {
		resp.Stack = err.Error()
	}
	JSON(w, r, resp, status)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"agency-console/internal/aggregate"
	"agency-console/internal/apiclient"
	"agency-console/internal/gate"
	"agency-console/internal/logger"
	"agency-console/internal/payments"
	"agency-console/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return false
	}
	return true
}

// statusFor maps service errors to the status the browser sees.
func statusFor(err error) int {
	var verr *services.ValidationError
	var budget *aggregate.BudgetExceededError
	switch {
	case errors.As(err, &verr), errors.As(err, &budget), errors.Is(err, aggregate.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payments.ErrNothingDue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, gate.ErrSwitchRole), errors.Is(err, services.ErrAlreadyMarked), errors.Is(err, services.ErrResetFlowMissing):
		return http.StatusConflict
	case errors.Is(err, services.ErrClientNotFound), errors.Is(err, services.ErrNoProfile):
		return http.StatusNotFound
	case errors.Is(err, payments.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return apiclient.StatusCode(err)
}

// messageFor is the operator-facing text. Console-side guards carry their
// own message; upstream failures use the server's text or fallback.
func messageFor(err error, fallback string) string {
	var verr *services.ValidationError
	var budget *aggregate.BudgetExceededError
	switch {
	case errors.As(err, &budget):
		return budget.Error()
	case errors.As(err, &verr),
		errors.Is(err, aggregate.ErrInvalidAmount),
		errors.Is(err, gate.ErrSwitchRole),
		errors.Is(err, services.ErrAlreadyMarked),
		errors.Is(err, services.ErrResetFlowMissing),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrNoProfile),
		errors.Is(err, payments.ErrNotConfigured),
		errors.Is(err, payments.ErrNothingDue):
		return err.Error()
	}
	return apiclient.UserMessage(err, fallback)
}

// mutationError answers a failed write. The browser shows it as a toast.
func mutationError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	logFailure(status, err, fallback)

	body := map[string]any{"error": messageFor(err, fallback)}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	if errors.Is(err, services.ErrResetFlowMissing) {
		body["redirect"] = "/forgot-password"
	}
	writeJSON(w, status, body)
}

// readError answers a failed read. The browser shows it in the screen's
// error panel instead of a toast.
func readError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	logFailure(status, err, fallback)
	writeJSON(w, status, map[string]any{"error": messageFor(err, fallback), "panel": true})
}

func logFailure(status int, err error, action string) {
	l := logger.WithComponent("handlers")
	var event *zerolog.Event
	switch {
	case status >= 500:
		event = l.Error()
	case errors.Is(err, apiclient.ErrForbidden):
		event = l.Warn()
	default:
		event = l.Debug()
	}
	event.Err(err).Int("status", status).Str("action", action).Msg("Request failed")
}

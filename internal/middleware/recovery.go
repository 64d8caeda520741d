package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"agency-console/internal/logger"
)

// PanicRecovery answers a panicking handler with a 500 JSON error.
func PanicRecovery(next http.Handler) http.Handler {
	log := logger.WithComponent("recovery")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Str("panic", fmt.Sprint(rec)).
					Str("request_id", RequestIDFromContext(r.Context())).
					Str("method", r.Method).
					Str("path", sanitizePath(r.URL.Path)).
					Bytes("stack", debug.Stack()).
					Msg("Handler panicked")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"agency-console/internal/config"
)

// exposedHeaders are response headers the browser console reads from
// cross-origin calls.
var exposedHeaders = []string{"X-Request-ID", "X-Archive-Key", "Content-Disposition", "Retry-After"}

// NewCORS allows the configured origins. With no origins configured the
// console is same-origin only and the handler passes requests through.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	if len(cfg.Server.CorsAllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}

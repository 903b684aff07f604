package mw

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/MrSnakeDoc/linkshelf/internal/logger"
)

// CORS lets the listed origins read the JSON endpoints. If the list is empty,
// it does NOT add any header (same-origin only).
func CORS(allowedOrigins []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		log.Debug("CORS: no allowed origins, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("CORS: initialized with origins=%v", allowedOrigins)

	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
			"Cache-Control",
		},
		ExposedHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"Retry-After",
		},
		MaxAge: 300,
	}
	return cors.Handler(opts)
}

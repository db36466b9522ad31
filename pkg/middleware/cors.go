package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API. "*" allows
	// any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is how long, in seconds, preflight results may be cached.
	MaxAge int
}

// DefaultCORSConfig returns the CORS settings for the catalog API.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", CorrelationIDHeader},
		ExposedHeaders: []string{CorrelationIDHeader, "Location"},
		MaxAge:         3600,
	}
}

// CORS sets Cross-Origin Resource Sharing headers and answers preflight
// requests with 204.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	wildcard := false
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			wildcard = true
		}
		origins[o] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			switch _, ok := origins[origin]; {
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case ok:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			default:
				// Unknown origin: serve the request without CORS headers and
				// let the browser block it.
				next.ServeHTTP(w, r)
				return
			}

			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

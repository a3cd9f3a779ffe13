package middleware

import (
	"net/http"
	"slices"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Origin, X-Requested-With, Content-Type, Accept, Authorization"
)

// CORSMiddleware applies the browser policy for embedding frontends.
// With no configured origins, any origin is allowed; otherwise only the
// listed ones are echoed back. Preflight OPTIONS requests short-circuit
// with 200 so older browsers are happy.
func CORSMiddleware(origins []string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := "*"
			if len(origins) > 0 {
				if !slices.Contains(origins, origin) {
					// not an allowed origin: skip the CORS headers entirely,
					// the browser will refuse the response
					next.ServeHTTP(w, r)
					return
				}
				allowed = origin
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

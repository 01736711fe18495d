package middleware

import (
	"net/http"

	"github.com/alphasourceai/upload-portal/internal/domain"
)

// RequireOrigin rejects browser requests from origins outside the
// allow-list before they reach any handler. Requests without an Origin
// header (curl, server-to-server) pass through.
func RequireOrigin(allowed []string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := set[origin]; !ok {
					writeJSONError(w, domain.ErrForbiddenOrigin)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
)

// BodyLimit caps request bodies on writes. Declared lengths over the cap are
// rejected up front; chunked bodies fail at decode time.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
				if r.ContentLength > maxBytes {
					api.Fail(w, r, http.StatusRequestEntityTooLarge, api.TypeBadRequest, "Request body too large")
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

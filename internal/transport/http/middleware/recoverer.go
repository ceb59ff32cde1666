package middleware

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
)

// Recoverer turns a handler panic into a ServerError response.
// http.ErrAbortHandler is re-raised so the server aborts the connection.
func Recoverer(responder *api.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				if e, ok := rec.(error); ok {
					err = errors.Wrap(e, "panic")
				} else {
					err = errors.Errorf("panic: %v", rec)
				}
				responder.Error(w, r, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

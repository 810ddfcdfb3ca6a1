package middleware

import (
	"context"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type panicLogger interface {
	LogPanic(ctx context.Context, endpoint string, v any, stack []byte)
}

// Recover turns a handler panic into a generic 500 and records it under the request path.
// The 500 is only written if the handler has not already sent headers.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover(errLog panicLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				errLog.LogPanic(r.Context(), r.URL.Path, rec, debug.Stack())
				if ww.Status() == 0 {
					writeJSONError(ww, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

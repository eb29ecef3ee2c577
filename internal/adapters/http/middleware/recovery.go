package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
)

// Recovery turns a handler panic into a logged 500 problem. The panic value
// and stack reach the log only. When the handler had already started its
// response nothing more is written, and http.ErrAbortHandler is re-raised so
// net/http can drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "handler panicked",
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.String("panic", fmt.Sprint(v)),
					slog.Bool("response_started", rec.committed),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.committed {
					dto.WriteStatus(rec, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

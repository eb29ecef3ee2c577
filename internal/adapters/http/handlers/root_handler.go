package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
)

// Greeting is the body served at the root path.
const Greeting = "Hello, Go! ❤︎ Turso"

// Index handles GET / with a plain-text greeting.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, Greeting); err != nil {
		logging.FromContext(r.Context(), nil).DebugContext(r.Context(), "greeting not delivered", slog.Any("error", err))
	}
}

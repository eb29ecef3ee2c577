package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
)

// maxCreateBodyBytes caps a POST /todos payload. Larger bodies fail to
// decode and are answered like any other malformed body.
const maxCreateBodyBytes = 1 << 20

// respondJSON marshals v before touching w, so a value that cannot be encoded
// becomes a 500 problem instead of a truncated 2xx body.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(r.Context(), nil).ErrorContext(r.Context(), "response body not encodable",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		dto.WriteStatus(w, r, http.StatusInternalServerError, "response could not be encoded")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.FromContext(r.Context(), nil).DebugContext(r.Context(), "client went away mid-response",
			slog.Any("error", err),
		)
	}
}

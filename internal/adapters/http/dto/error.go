package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/domain"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
)

const problemContentType = "application/problem+json"

// opaqueDetail replaces the text of internal errors, which can carry SQL or
// driver messages.
const opaqueDetail = "the request could not be completed"

// Problem is an RFC 9457 problem details body.
type Problem struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail,omitempty"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalid-params,omitempty"`
}

// InvalidParam is one entry of the invalid-params extension shown in
// RFC 9457 section 3.
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ProblemFor describes err as a problem for request r. Errors that wrap
// none of the domain kinds become a 500 with an opaque detail.
func ProblemFor(r *http.Request, err error) Problem {
	p := newProblem(r, statusFor(err), err.Error())
	if p.Status == http.StatusInternalServerError {
		p.Detail = opaqueDetail
	}

	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		p.InvalidParams = []InvalidParam{{Name: inputErr.Input, Reason: inputErr.Reason}}
	}
	return p
}

// WriteError writes the problem for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, ProblemFor(r, err))
}

// WriteStatus writes a problem that has no domain error behind it, such as a
// recovered panic or an expired request deadline.
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, newProblem(r, status, detail))
}

func newProblem(r *http.Request, status int, detail string) Problem {
	return Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.RequestURI(),
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logging.FromContext(r.Context(), nil).WarnContext(r.Context(), "problem response not delivered",
			slog.Int("status", p.Status),
			slog.Any("error", err),
		)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

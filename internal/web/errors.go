package web

// errors.go provides unified error response handling for the web layer.
//
// Handlers call respondError with whatever the core returned; the error is
// mapped to a user-facing message via clientes.MapError, logged with full
// technical detail and the request ID, and rendered as JSON for API clients
// or as an HTML alert for page requests. The HTTP status comes from the
// error's type: validation failures are 422, not-found is 404, a malformed
// batch payload is 400, everything else is 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pvbarbosa/cadastro/internal/clientes"
	"github.com/pvbarbosa/cadastro/internal/web/templates"
)

// ErrorResponse is the JSON structure for API error responses. Erros carries
// the field-level reason list when the failure came from validation.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Action string   `json:"action,omitempty"`
	Code   string   `json:"code"`
	Erros  []string `json:"erros,omitempty"`
}

// respondError logs the technical error and writes the mapped user message
// in the format appropriate for the request.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := clientes.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", chimw.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		resp := ErrorResponse{
			Error:  userMsg.Message,
			Action: userMsg.Action,
			Code:   userMsg.Code,
		}
		var verr *clientes.ValidationError
		if errors.As(err, &verr) {
			resp.Erros = verr.Erros
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Layout("Erro",
		templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code),
	).Render(r.Context(), w)
}

// statusFor maps core error types to HTTP status codes.
func statusFor(err error) int {
	var verr *clientes.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, clientes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, clientes.ErrMalformedBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}

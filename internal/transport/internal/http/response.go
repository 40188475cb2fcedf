package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	ierrors "github.com/deepview/deepview-mcp/internal/errors"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// errorResponse is the JSON body of non-JSON-RPC error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder. The
// advertised scope list appears in WWW-Authenticate challenges so
// clients know what to request.
type errorResponder struct {
	scopes []string
}

// NewErrorResponder creates a responder advertising the given required
// scopes in its challenges.
func NewErrorResponder(scopes []string) transportcore.ErrorResponder {
	return &errorResponder{scopes: scopes}
}

// Unauthorized sends 401 per RFC 6750. Whatever the validation cause,
// the wire shape is identical; the cause goes to the log only.
func (e *errorResponder) Unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", e.challenge(ierrors.CodeInvalidToken))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	slog.Warn("unauthorized request", "error", err)

	e.write(w, errorResponse{
		Error:   "unauthorized",
		Message: "Authentication required",
	})
}

// Forbidden sends 403 with an insufficient_scope challenge.
func (e *errorResponder) Forbidden(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", e.challenge(ierrors.CodeInsufficientScope))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)

	slog.Warn("forbidden request", "error", err)

	message := "Insufficient scope"
	if len(e.scopes) > 0 {
		message = fmt.Sprintf("Required scopes: %s", strings.Join(e.scopes, " "))
	}
	e.write(w, errorResponse{
		Error:   "insufficient_scope",
		Message: message,
	})
}

// NotFound sends 404 with the resolution failure message.
func (e *errorResponder) NotFound(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	slog.Warn("resource not found", "error", err)

	e.write(w, errorResponse{
		Error:   "not_found",
		Message: causeMessage(err),
	})
}

// BadRequest sends 400 with the input-validation message.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	slog.Warn("bad request", "error", err)

	message := "Invalid request"
	if err != nil {
		message = causeMessage(err)
	}
	e.write(w, errorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// InternalError sends 500 with a generic message.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	slog.Error("internal server error", "error", err)

	e.write(w, errorResponse{
		Error:   "internal_error",
		Message: "An internal server error occurred",
	})
}

func (e *errorResponder) write(w http.ResponseWriter, resp errorResponse) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// challenge builds a WWW-Authenticate value per RFC 6750.
func (e *errorResponder) challenge(errorCode string) string {
	parts := []string{"Bearer"}
	if errorCode != "" {
		parts = append(parts, fmt.Sprintf(`error="%s"`, errorCode))
	}
	if len(e.scopes) > 0 {
		parts = append(parts, fmt.Sprintf(`scope="%s"`, strings.Join(e.scopes, " ")))
	}
	return strings.Join(parts, " ")
}

// causeMessage unwraps a DomainError to its user-facing cause, keeping
// the internal domain.op prefix out of wire responses.
func causeMessage(err error) string {
	var derr *ierrors.DomainError
	if errors.As(err, &derr) && derr.Err != nil {
		return derr.Err.Error()
	}
	return err.Error()
}

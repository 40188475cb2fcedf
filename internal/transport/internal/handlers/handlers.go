// Package handlers provides the HTTP handlers for the transport layer.
package handlers

import (
	"errors"
	"net/http"

	ierrors "github.com/deepview/deepview-mcp/internal/errors"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// ServiceInfo identifies the gateway in server-info, health, and
// discovery responses.
type ServiceInfo struct {
	Name        string
	Version     string
	Description string
	Model       string
}

// respondError maps a dispatch failure onto its wire-level shape. All
// failures funnel through here; nothing propagates past the transport.
func respondError(w http.ResponseWriter, responder transportcore.ErrorResponder, err error) {
	switch {
	case errors.Is(err, ierrors.ErrBadRequest):
		responder.BadRequest(w, err)
	case errors.Is(err, ierrors.ErrUnauthorized):
		responder.Unauthorized(w, err)
	case errors.Is(err, ierrors.ErrForbidden):
		responder.Forbidden(w, err)
	case errors.Is(err, ierrors.ErrNotFound):
		responder.NotFound(w, err)
	default:
		responder.InternalError(w, err)
	}
}

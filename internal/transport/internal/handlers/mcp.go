package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deepview/deepview-mcp/internal/mcp"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// serverInfoResponse is the GET body of the protocol endpoint.
type serverInfoResponse struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Protocol     string   `json:"protocol"`
	Capabilities []string `json:"capabilities"`
}

// MCPHandler serves the protocol endpoint: JSON-RPC over POST, plus the
// GET/HEAD/OPTIONS surface clients use to probe the endpoint.
type MCPHandler struct {
	handler   mcp.Handler
	responder transportcore.ErrorResponder
	info      ServiceInfo
	logger    *slog.Logger
}

// NewMCPHandler creates the protocol endpoint handler.
func NewMCPHandler(handler mcp.Handler, responder transportcore.ErrorResponder, info ServiceInfo, logger *slog.Logger) *MCPHandler {
	if handler == nil {
		panic("handler cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MCPHandler{
		handler:   handler,
		responder: responder,
		info:      info,
		logger:    logger,
	}
}

// ServeHTTP routes by method. The endpoint is registered without a
// method pattern so unsupported verbs get a deliberate 405 here.
func (h *MCPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w)
	case http.MethodHead:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	case http.MethodOptions:
		w.Header().Set("Allow", "GET,POST,HEAD")
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET,POST,HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet serves a plain server-info document so a browser or probe
// hitting the endpoint sees what it is talking to.
func (h *MCPHandler) handleGet(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, serverInfoResponse{
		Name:         h.info.Name,
		Version:      h.info.Version,
		Description:  h.info.Description,
		Protocol:     "mcp",
		Capabilities: []string{"tools"},
	})
}

func (h *MCPHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("unparseable json-rpc request", "error", err)
		h.writeResponse(w, &mcp.Response{
			JSONRPC: mcp.JSONRPCVersion,
			Error:   &mcp.Error{Code: mcp.CodeParseError, Message: "Parse error"},
		}, http.StatusBadRequest)
		return
	}

	resp, err := h.handler.HandleRequest(r.Context(), &req)
	if err != nil {
		respondError(w, h.responder, err)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeResponse(w, resp, statusForResponse(resp))
}

func (h *MCPHandler) writeResponse(w http.ResponseWriter, resp *mcp.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode json-rpc response", "error", err)
	}
}

// statusForResponse maps a JSON-RPC error object onto the HTTP status
// the envelope travels under. Results always ride a 200.
func statusForResponse(resp *mcp.Response) int {
	if !resp.IsError() {
		return http.StatusOK
	}
	switch resp.Error.Code {
	case mcp.CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeJSON writes a JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

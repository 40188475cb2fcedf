// Package mcp implements the gateway's JSON-RPC protocol dispatcher:
// the session handshake, the tool catalog, and tool invocation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler processes one JSON-RPC request. The protocol is stateless
// across requests; no session state persists between calls.
type Handler interface {
	// HandleRequest routes a request to its method handler. A returned
	// *Response may itself carry a JSON-RPC error object; a returned
	// error is an application-level failure the transport maps to an
	// HTTP status (400/401/403/404) outside the JSON-RPC envelope.
	HandleRequest(ctx context.Context, req *Request) (*Response, error)
}

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`

	// ID is the opaque correlation identifier; echoed verbatim in the
	// response. Absent for notifications.
	ID any `json:"id,omitempty"`

	Method string `json:"method"`

	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope. Result and Error are
// mutually exclusive.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Protocol constants.
const (
	// ProtocolVersion is the MCP protocol version this server speaks.
	ProtocolVersion = "2024-11-05"

	// JSONRPCVersion is the JSON-RPC version used by MCP.
	JSONRPCVersion = "2.0"
)

// JSON-RPC 2.0 error codes. The taxonomy is deliberately minimal.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// Tool names in the static catalog.
const (
	ToolDeepview          = "deepview"
	ToolListCodebaseFiles = "list_codebase_files"
)

// Error implements the error interface for Error.
func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// Validate checks the request against JSON-RPC 2.0 requirements.
func (r *Request) Validate() error {
	if r.JSONRPC != JSONRPCVersion {
		return &Error{Code: CodeInvalidRequest, Message: "invalid jsonrpc version"}
	}
	if r.Method == "" {
		return &Error{Code: CodeInvalidRequest, Message: "method is required"}
	}
	return nil
}

// IsError returns true if the response carries an error object.
func (r *Response) IsError() bool {
	return r.Error != nil
}

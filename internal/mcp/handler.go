package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/corpus"
	ierrors "github.com/deepview/deepview-mcp/internal/errors"
	"github.com/deepview/deepview-mcp/internal/query"
)

const domainMCP = "mcp"

// NoFilesMessage is the exact tool output for an empty corpus root.
const NoFilesMessage = "No codebase files found"

// Config holds the dispatcher's identity metadata.
type Config struct {
	ServerName    string
	ServerVersion string
}

// dispatcher implements Handler over a closed method set. Dispatch is an
// enumerated switch with an explicit default arm, so an unrecognized
// method can never fall through silently.
type dispatcher struct {
	resolver   *corpus.Resolver
	store      *corpus.Store
	bridge     query.Bridge
	authorizer auth.Authorizer
	info       Config
}

// NewDispatcher creates the protocol dispatcher.
func NewDispatcher(cfg Config, resolver *corpus.Resolver, store *corpus.Store, bridge query.Bridge, authorizer auth.Authorizer) Handler {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if bridge == nil {
		panic("bridge cannot be nil")
	}
	if authorizer == nil {
		panic("authorizer cannot be nil")
	}
	return &dispatcher{
		resolver:   resolver,
		store:      store,
		bridge:     bridge,
		authorizer: authorizer,
		info:       cfg,
	}
}

// HandleRequest routes a JSON-RPC request to its method handler.
func (d *dispatcher) HandleRequest(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return errorResponse(nil, CodeInvalidRequest, "request cannot be nil", nil), nil
	}
	if err := req.Validate(); err != nil {
		rpcErr := err.(*Error)
		return errorResponse(req.ID, rpcErr.Code, rpcErr.Message, nil), nil
	}

	switch req.Method {
	case "initialize":
		return d.handleInitialize(req), nil
	case "notifications/initialized":
		return resultResponse(req.ID, struct{}{}), nil
	case "tools/list":
		return resultResponse(req.ID, ToolsListResult{Tools: toolCatalog()}), nil
	case "tools/call":
		return d.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found",
			fmt.Sprintf("Unknown method: %s", req.Method)), nil
	}
}

func (d *dispatcher) handleInitialize(req *Request) *Response {
	return resultResponse(req.ID, InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
		ServerInfo: ServerInfo{
			Name:    d.info.ServerName,
			Version: d.info.ServerVersion,
		},
	})
}

func (d *dispatcher) handleToolsCall(ctx context.Context, req *Request) (*Response, error) {
	if req.Params == nil {
		return nil, ierrors.New(domainMCP, "handleToolsCall", ierrors.ErrBadRequest,
			fmt.Errorf("params required"))
	}

	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, ierrors.New(domainMCP, "handleToolsCall", ierrors.ErrBadRequest,
			fmt.Errorf("invalid tools/call params: %w", err))
	}

	switch params.Name {
	case ToolDeepview:
		return d.handleDeepview(ctx, req.ID, params.Arguments)
	case ToolListCodebaseFiles:
		return d.handleListCodebaseFiles(req.ID)
	default:
		return nil, ierrors.New(domainMCP, "handleToolsCall", ierrors.ErrBadRequest,
			fmt.Errorf("unknown tool: %s", params.Name)).
			WithContext("tool", params.Name)
	}
}

// handleDeepview answers a question about a named or default corpus.
// Authorization runs here rather than at the transport because the
// project name is a protocol-level argument, unknown until the corpus
// is resolved.
func (d *dispatcher) handleDeepview(ctx context.Context, id any, args map[string]any) (*Response, error) {
	question, _ := args["question"].(string)
	if question == "" {
		return nil, ierrors.New(domainMCP, "handleDeepview", ierrors.ErrBadRequest,
			fmt.Errorf("question is required"))
	}

	codebaseFile, _ := args["codebase_file"].(string)

	var res *corpus.Resource
	if codebaseFile != "" {
		resolved, err := d.resolver.ResolveFile(codebaseFile)
		if err != nil {
			return nil, err
		}
		res = resolved
	} else {
		stored, ok := d.store.Get()
		if !ok {
			return nil, ierrors.New(domainMCP, "handleDeepview", ierrors.ErrNotFound,
				fmt.Errorf("no codebase content available"))
		}
		res = stored
	}

	if res.Text == "" {
		return nil, ierrors.New(domainMCP, "handleDeepview", ierrors.ErrNotFound,
			fmt.Errorf("no codebase content available")).
			WithContext("path", res.Path)
	}

	claims, err := d.authorizer.Authorize(ctx, auth.CredentialFromContext(ctx), res.Project)
	if err != nil {
		return nil, err
	}

	slog.Info("answering question",
		"project", res.Project,
		"codebase_file", res.Path,
		"subject", claims.Subject,
	)

	answer, err := d.bridge.Answer(ctx, res.Project, question, res.Text)
	if err != nil {
		slog.Error("query bridge failed", "error", err, "project", res.Project)
		return errorResponse(id, CodeInternalError, "Internal error", nil), nil
	}

	return resultResponse(id, ToolsCallResult{
		Content: []Content{{Type: "text", Text: answer}},
	}), nil
}

func (d *dispatcher) handleListCodebaseFiles(id any) (*Response, error) {
	files, err := d.resolver.List()
	if err != nil {
		slog.Error("listing codebase files failed", "error", err)
		return errorResponse(id, CodeInternalError, "Internal error", nil), nil
	}

	text := NoFilesMessage
	if len(files) > 0 {
		text = "Available codebase files:\n" + strings.Join(files, "\n")
	}

	return resultResponse(id, ToolsCallResult{
		Content: []Content{{Type: "text", Text: text}},
	}), nil
}

func resultResponse(id, result any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}
}

func errorResponse(id any, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/corpus"
	"github.com/deepview/deepview-mcp/internal/query"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// queryResponse is the JSON body of a successful REST query.
type queryResponse struct {
	Project      string `json:"project"`
	CodebaseFile string `json:"codebase_file"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Model        string `json:"model"`
}

// RESTHandler answers questions about a named project over plain GET,
// for clients that do not speak the protocol.
type RESTHandler struct {
	resolver   *corpus.Resolver
	bridge     query.Bridge
	authorizer auth.Authorizer
	responder  transportcore.ErrorResponder
	logger     *slog.Logger
}

// NewRESTHandler creates the REST query handler.
func NewRESTHandler(resolver *corpus.Resolver, bridge query.Bridge, authorizer auth.Authorizer, responder transportcore.ErrorResponder, logger *slog.Logger) *RESTHandler {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if bridge == nil {
		panic("bridge cannot be nil")
	}
	if authorizer == nil {
		panic("authorizer cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RESTHandler{
		resolver:   resolver,
		bridge:     bridge,
		authorizer: authorizer,
		responder:  responder,
		logger:     logger,
	}
}

// ServeHTTP handles GET /{project}?question=...&filename=... The
// project is in the path, so authorization runs up front here, unlike
// the protocol endpoint.
func (h *RESTHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")

	question := r.URL.Query().Get("question")
	if question == "" {
		h.responder.BadRequest(w, transportcore.ErrQuestionRequired)
		return
	}

	claims, err := h.authorizer.Authorize(r.Context(), r.Header.Get("Authorization"), project)
	if err != nil {
		respondError(w, h.responder, err)
		return
	}

	res, err := h.resolver.ResolveProject(project, r.URL.Query().Get("filename"))
	if err != nil {
		respondError(w, h.responder, err)
		return
	}

	h.logger.Info("rest query",
		"project", res.Project,
		"codebase_file", res.Path,
		"subject", claims.Subject,
	)

	answer, err := h.bridge.Answer(r.Context(), res.Project, question, res.Text)
	if err != nil {
		h.logger.Error("query bridge failed", "error", err, "project", res.Project)
		h.responder.InternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Project:      res.Project,
		CodebaseFile: res.Path,
		Question:     question,
		Answer:       answer,
		Model:        h.bridge.Model(),
	})
}

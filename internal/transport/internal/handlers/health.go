package handlers

import "net/http"

// healthResponse is the health probe body.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Model   string `json:"model"`
}

// NewHealthHandler returns the liveness probe handler. It reports
// static identity only; it does not reach the upstream model.
func NewHealthHandler(model string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: "DeepView MCP",
			Model:   model,
		})
	}
}

package handlers

import (
	"net/http"
)

// discoveryResponse is the /.well-known/mcp.json document clients use
// to locate the protocol endpoint and its authorization requirements.
type discoveryResponse struct {
	Name          string         `json:"name"`
	Version       string         `json:"version"`
	Description   string         `json:"description"`
	Endpoint      string         `json:"endpoint"`
	Capabilities  []string       `json:"capabilities"`
	Authorization *authorization `json:"authorization,omitempty"`
}

type authorization struct {
	Type                  string   `json:"type"`
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	Audience              string   `json:"audience"`
	Scopes                []string `json:"scopes,omitempty"`
}

// DiscoveryConfig holds the authorization advertisement. Zero Issuer
// means enforcement is off and the authorization block is omitted.
type DiscoveryConfig struct {
	Issuer   string
	Audience string
	Scopes   []string
}

// NewDiscoveryHandler serves GET /.well-known/mcp.json. The advertised
// endpoint URL is rebuilt per request from forwarding headers so the
// document stays correct behind a reverse proxy.
func NewDiscoveryHandler(info ServiceInfo, endpointPath string, authCfg DiscoveryConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := discoveryResponse{
			Name:         info.Name,
			Version:      info.Version,
			Description:  info.Description,
			Endpoint:     externalBaseURL(r) + endpointPath,
			Capabilities: []string{"tools"},
		}

		if authCfg.Issuer != "" {
			resp.Authorization = &authorization{
				Type:                  "oauth2",
				Issuer:                authCfg.Issuer,
				AuthorizationEndpoint: authCfg.Issuer + "/authorize",
				TokenEndpoint:         authCfg.Issuer + "/oauth/token",
				Audience:              authCfg.Audience,
				Scopes:                authCfg.Scopes,
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// externalBaseURL reconstructs the client-facing base URL, preferring
// reverse-proxy forwarding headers over the local connection.
func externalBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}

	return scheme + "://" + host
}

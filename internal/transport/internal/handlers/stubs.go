package handlers

import "net/http"

// The gateway is a resource server, not an identity provider. Clients
// probing the standard IdP well-known locations get explicit refusals
// instead of routing fallthrough.

// NewNotSupportedHandler answers IdP metadata probes with 404.
func NewNotSupportedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "not_supported",
		})
	}
}

// NewRegistrationHandler refuses dynamic client registration with 405.
func NewRegistrationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"error": "registration_not_supported",
		})
	}
}

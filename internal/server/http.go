package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/companies", s.handleSearchCompanies)
	mux.HandleFunc("GET /v1/companies/{number}", s.handleGetCompany)
	mux.HandleFunc("GET /v1/companies/{number}/officers", s.handleGetOfficers)
	mux.HandleFunc("GET /v1/companies/{number}/pscs", s.handleGetPSCs)
	mux.HandleFunc("GET /v1/network", s.handleBuildNetwork)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	var handler http.Handler = mux
	handler = AuthMiddleware(authToken, handler)
	handler = LoggingMiddleware(handler)
	handler = RecoveryMiddleware(handler)
	return handler
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeLookupError maps client and input errors to HTTP status codes.
// Upstream auth failures are a server misconfiguration from the caller's
// point of view, so they surface as 502 rather than 401.
func writeLookupError(w http.ResponseWriter, err error) {
	var ie inputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case companieshouse.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case companieshouse.IsRateLimit(err):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case companieshouse.IsAuth(err),
		companieshouse.IsTransport(err),
		companieshouse.IsMalformed(err):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

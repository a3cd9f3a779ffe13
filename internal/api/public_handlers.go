package api

import (
	"net/http"
	"time"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api/presenter"
	"github.com/somechocolate/tableau-embedded-analytics/internal/buildinfo"
)

// handleRoot responds with a short usage hint.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("JWT Server is running. Use /token endpoint to generate a token."))
}

// handleHealth responds with an OK status and the current server time.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

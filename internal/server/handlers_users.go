package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// handleMe returns the identity carried by the bearer token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CurrentUser(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.jsonResponse(w, http.StatusOK, identity)
}

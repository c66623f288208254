package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxResumeBytes bounds a saved document. Embedded photos dominate the size.
const maxResumeBytes = 8 << 20

// ResumeListResponse is returned by GET /resumes.
type ResumeListResponse struct {
	Resumes []db.ResumeSummary `json:"resumes"`
}

// owner returns the normalized email of the signed-in user.
func owner(r *http.Request) (string, bool) {
	identity, ok := middleware.CurrentUser(r)
	if !ok || identity.Email == "" {
		return "", false
	}
	return strings.ToLower(identity.Email), true
}

func resumeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// readResume normalizes the request body. The photo is kept; only local
// snapshots drop it.
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (types.Resume, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxResumeBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.Resume{}, &ErrValidation{Field: "body", Message: fmt.Sprintf("larger than %d bytes", tooLarge.Limit)}
		}
		return types.Resume{}, &ErrValidation{Field: "body", Message: "could not be read"}
	}

	doc, report := resume.Normalize(data)
	if report.Malformed {
		return types.Resume{}, &ErrValidation{Field: "body", Message: "must be a JSON object"}
	}
	report.Log(s.log.WithField("path", r.URL.Path), "submitted resume needed repair")
	return doc, nil
}

// loadOwned returns the record when it exists and belongs to user.
func (s *Server) loadOwned(ctx context.Context, user string, id uuid.UUID) (*db.ResumeRecord, error) {
	record, err := s.repo.GetResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if record == nil {
		return nil, &db.NotFoundError{ID: id}
	}
	if !strings.EqualFold(record.OwnerEmail, user) {
		return nil, &ErrForbidden{ID: id.String()}
	}
	return record, nil
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := s.repo.ListResumes(r.Context(), user)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to list resumes: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: summaries})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	doc, err := s.readResume(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	id, err := s.repo.SaveResume(r.Context(), user, nil, doc)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to save resume: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.SaveResponse{ID: id.String()})
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := resumeID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	doc, err := s.readResume(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	savedID, err := s.repo.SaveResume(r.Context(), user, &id, doc)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SaveResponse{ID: savedID.String()})
}

// handleGetResume returns the normalized document, so clients always load
// the current shape even for rows saved by older versions.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := resumeID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	record, err := s.loadOwned(r.Context(), user, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	doc, report := resume.Normalize(record.Document)
	report.Log(s.log.WithField("resume_id", id), "stored resume needed repair")
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := resumeID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.repo.DeleteResume(r.Context(), user, id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareResume(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := resumeID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "enabled", Message: "is required"})
		return
	}

	token, err := s.repo.SetShare(r.Context(), user, id, *req.Enabled)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := types.ShareResponse{ID: id.String(), Enabled: *req.Enabled}
	if token != "" {
		resp.ShareURL = s.shareURL(r, token)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// shareURL builds the public link for token.
func (s *Server) shareURL(r *http.Request, token string) string {
	base := strings.TrimRight(s.publicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/shared/" + token
}

// handleGetShared serves a resume by its share token without authentication.
func (s *Server) handleGetShared(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	record, err := s.repo.GetSharedResume(r.Context(), token)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to load shared resume: %w", err))
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	doc, report := resume.Normalize(record.Document)
	report.Log(s.log.WithField("resume_id", record.ID), "stored resume needed repair")
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleResumePDF renders an owned resume to PDF in the requested locale.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	user, ok := owner(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := resumeID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	req := types.RenderRequest{Locale: r.URL.Query().Get("locale")}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "locale", Message: "must be one of en, ru"})
		return
	}

	renderer := rendering.NewService(s.ownedLoader(user), s.printer, s.log)
	pdf, err := renderer.Render(r.Context(), id.String(), req.Locale)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"resume-%s.pdf\"", id))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.log.WithError(err).Warn("failed to write PDF response")
	}
}

// ownedLoader loads documents for the render service. Resumes of other
// users look missing.
func (s *Server) ownedLoader(user string) rendering.Loader {
	return rendering.LoaderFunc(func(ctx context.Context, documentID string) ([]byte, error) {
		id, err := uuid.Parse(documentID)
		if err != nil {
			return nil, nil
		}
		record, err := s.loadOwned(ctx, user, id)
		if err != nil {
			var notFound *db.NotFoundError
			var forbidden *ErrForbidden
			if errors.As(err, &notFound) || errors.As(err, &forbidden) {
				return nil, nil
			}
			return nil, err
		}
		return record.Document, nil
	})
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "locale", Message: "must be one of en, ru"}
	assert.Equal(t, "validation error: locale - must be one of en, ru", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"nil", nil, http.StatusOK, ""},
		{"validation", &ErrValidation{Field: "id", Message: "must be a UUID"}, http.StatusBadRequest, "validation error: id - must be a UUID"},
		{"forbidden", &ErrForbidden{ID: id.String()}, http.StatusNotFound, "Resume not found"},
		{"db not found", &db.NotFoundError{ID: id}, http.StatusNotFound, "Resume not found"},
		{"wrapped db not found", fmt.Errorf("failed to save: %w", &db.NotFoundError{ID: id}), http.StatusNotFound, "Resume not found"},
		{"render not found", &rendering.NotFoundError{ID: id.String()}, http.StatusNotFound, "Resume not found"},
		{"template", &rendering.TemplateError{Message: "bad"}, http.StatusInternalServerError, "Internal server error"},
		{"render", &rendering.RenderError{Message: "chrome crashed"}, http.StatusBadGateway, "Failed to render PDF"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.message, publicMessage(tt.err))
			}
		})
	}
}

func TestErrForbidden_Message(t *testing.T) {
	err := &ErrForbidden{ID: "abc"}
	assert.Equal(t, "resume abc belongs to another user", err.Error())
}

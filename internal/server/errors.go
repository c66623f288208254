// Package server provides the HTTP REST API for saving, sharing and
// exporting resumes.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the resume belongs to another user. It is reported
// to clients as not found.
type ErrForbidden struct {
	ID string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("resume %s belongs to another user", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		forbiddenErr   *ErrForbidden
		dbNotFound     *db.NotFoundError
		renderNotFound *rendering.NotFoundError
		templateErr    *rendering.TemplateError
		renderErr      *rendering.RenderError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &forbiddenErr), errors.As(err, &dbNotFound), errors.As(err, &renderNotFound):
		return http.StatusNotFound
	case errors.As(err, &templateErr):
		return http.StatusInternalServerError
	case errors.As(err, &renderErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text clients see. Internal failures are not
// echoed back.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		return "Resume not found"
	case http.StatusBadGateway:
		return "Failed to render PDF"
	default:
		return "Internal server error"
	}
}

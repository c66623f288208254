package types

import (
	"github.com/go-playground/validator/v10"
)

// Identity is the authenticated user as reported by the identity provider.
type Identity struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// ShareRequest toggles public sharing of a saved resume.
type ShareRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ShareResponse carries the public link of a shared resume.
// ShareURL is empty when sharing was disabled.
type ShareResponse struct {
	ID       string `json:"id"`
	Enabled  bool   `json:"enabled"`
	ShareURL string `json:"shareUrl,omitempty"`
}

// SaveResponse is returned after a resume has been persisted.
type SaveResponse struct {
	ID string `json:"id"`
}

// RenderRequest holds the query parameters of a PDF export.
type RenderRequest struct {
	Locale string `validate:"omitempty,oneof=en ru"`
}

var validate = validator.New()

// Validate validates the Identity using the validator.
func (i *Identity) Validate() error {
	return validate.Struct(i)
}

// Validate validates the ShareRequest using the validator.
func (r *ShareRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	return validate.Struct(r)
}

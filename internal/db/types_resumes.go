package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// UntitledResume is the title of a resume without a name or position.
const UntitledResume = "Untitled resume"

// ResumeRecord is a stored resume with its metadata
type ResumeRecord struct {
	ID           uuid.UUID       `json:"id"`
	OwnerEmail   string          `json:"owner_email"`
	Title        string          `json:"title"`
	Document     json.RawMessage `json:"document"`
	ShareToken   *string         `json:"share_token,omitempty"`
	ShareEnabled bool            `json:"share_enabled"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ResumeSummary is a lightweight view of a resume for listing
type ResumeSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ShareEnabled bool      `json:"share_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NotFoundError is returned when a resume does not exist or belongs to
// another owner.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// DeriveTitle builds the list title of a resume: "Last First - Position",
// leaving out whatever is empty.
func DeriveTitle(doc types.Resume) string {
	name := strings.Join(strings.Fields(doc.LastName+" "+doc.FirstName), " ")
	position := strings.TrimSpace(doc.Position)

	switch {
	case name != "" && position != "":
		return name + " - " + position
	case name != "":
		return name
	case position != "":
		return position
	default:
		return UntitledResume
	}
}

// newShareToken returns an unguessable token for a public share link.
func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

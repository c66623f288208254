package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  types.Resume
		want string
	}{
		{"full", types.Resume{LastName: "Lovelace", FirstName: "Ada", Position: "Analyst"}, "Lovelace Ada - Analyst"},
		{"name only", types.Resume{LastName: "Lovelace", FirstName: "Ada"}, "Lovelace Ada"},
		{"first name only", types.Resume{FirstName: " Ada "}, "Ada"},
		{"position only", types.Resume{Position: "Analyst"}, "Analyst"},
		{"empty", types.Resume{}, UntitledResume},
		{"whitespace", types.Resume{LastName: "  ", Position: "\t"}, UntitledResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.doc))
		})
	}
}

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	var err error = &NotFoundError{ID: id}

	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "resume not found: "+id.String(), err.Error())
}

func TestNewShareToken(t *testing.T) {
	a := newShareToken()
	b := newShareToken()

	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

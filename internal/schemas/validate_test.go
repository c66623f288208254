package schemas

import (
	"errors"
	"testing"

	embedded "github.com/jonathan/resume-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_ValidResume(t *testing.T) {
	doc := `{
		"firstName": "Ada",
		"experience": [{"id": "e1", "company": "Engines", "isCurrent": true}],
		"techSkills": {"tags": ["Go"], "note": ""},
		"templateKey": "modern",
		"sectionsVisibility": {"contacts": false}
	}`

	assert.NoError(t, ValidateDocument(embedded.Resume, []byte(doc)))
}

func TestValidateDocument_UnknownKey(t *testing.T) {
	err := ValidateDocument(embedded.Resume, []byte(`{"fullName": "Ada Lovelace"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Errors[0].Message, "fullName")
}

func TestValidateDocument_WrongTypes(t *testing.T) {
	doc := `{"includePhoto": "yes", "experience": [{"id": "e1", "isCurrent": "no"}]}`

	err := ValidateDocument(embedded.Resume, []byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "includePhoto")
	assert.Contains(t, fields, "experience.0.isCurrent")
}

func TestValidateDocument_UnknownSectionKey(t *testing.T) {
	err := ValidateDocument(embedded.Resume, []byte(`{"sectionsVisibility": {"hobbies": true}}`))
	assert.Error(t, err)
}

func TestValidateDocument_SnapshotRejectsPhoto(t *testing.T) {
	ok := `{"version": 1, "resume": {"firstName": "Ada"}, "isDraft": true}`
	assert.NoError(t, ValidateDocument(embedded.Snapshot, []byte(ok)))

	withPhoto := `{"version": 1, "resume": {"photo": "data:image/png;base64,AAAA"}, "isDraft": true}`
	assert.Error(t, ValidateDocument(embedded.Snapshot, []byte(withPhoto)))
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "nope.schema.json")
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument(embedded.Resume, []byte(`{ not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name": "Ada"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"]}`
	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "firstName", Message: "Invalid type"},
			{Field: "(root)", Message: "Additional property x is not allowed"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. firstName: Invalid type")
	assert.Contains(t, msg, "2. (root)")
}

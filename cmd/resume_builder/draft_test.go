package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/snapshot"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, storage snapshot.Storage) *draftSession {
	t.Helper()
	log, _ := test.NewNullLogger()
	session, err := openDraft(context.Background(), storage, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.close() })
	return session
}

func TestSetField(t *testing.T) {
	s := resume.NewStore(nil)

	require.NoError(t, setField(s, "lastName", "Lovelace"))
	require.NoError(t, setField(s, "position", "Analyst"))
	require.NoError(t, setField(s, "templateKey", "modern"))
	require.NoError(t, setField(s, "includePhoto", "false"))

	doc := s.Resume()
	assert.Equal(t, "Lovelace", doc.LastName)
	assert.Equal(t, "Analyst", doc.Position)
	assert.Equal(t, types.TemplateModern, doc.TemplateKey)
	assert.False(t, doc.IncludePhoto)
}

func TestSetField_Errors(t *testing.T) {
	s := resume.NewStore(nil)

	tests := []struct {
		field, value, want string
	}{
		{"photo", "data:image/png;base64,AA", "unknown field"},
		{"templateKey", "fancy", "unknown template"},
		{"includePhoto", "maybe", "true or false"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := setField(s, tt.field, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Equal(t, uint64(0), s.Version(), "failed sets leave the store untouched")
}

func TestContactsPatch(t *testing.T) {
	given := map[string]string{"email": "ada@example.com", "github": ""}
	patch, changed := contactsPatch(func(name string) (string, bool) {
		v, ok := given[name]
		return v, ok
	})
	require.True(t, changed)

	s := resume.NewStore(nil)
	s.SetContacts(resume.ContactsPatch{GitHub: strPtr("ada"), Phone: strPtr("+44")})
	s.SetContacts(patch)

	c := s.Resume().Contacts
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Empty(t, c.GitHub, "an empty flag clears the channel")
	assert.Equal(t, "+44", c.Phone, "channels without a flag are kept")
}

func TestContactsPatch_NothingGiven(t *testing.T) {
	_, changed := contactsPatch(func(string) (string, bool) { return "", false })
	assert.False(t, changed)
}

func TestPatchInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "patch.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"from":"file"}`), 0o600))

	data, err := patchInput(strings.NewReader(`{"from":"stdin"}`), []string{`{"from":"arg"}`}, file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"arg"}`, string(data))

	data, err = patchInput(strings.NewReader(`{"from":"stdin"}`), nil, file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"file"}`, string(data))

	data, err = patchInput(strings.NewReader(`{"from":"stdin"}`), nil, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"stdin"}`, string(data))

	_, err = patchInput(nil, nil, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDecodePatch_RejectsUnknownFields(t *testing.T) {
	_, err := decodePatch[resume.ExperiencePatch]([]byte(`{"compnay":"Acme"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid patch")

	patch, err := decodePatch[resume.ExperiencePatch]([]byte(`{"company":"Acme","isCurrent":true}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Company)
	assert.Equal(t, "Acme", *patch.Company)
}

func TestListEntries(t *testing.T) {
	s := resume.NewStore(nil)

	id, err := addEntry(s, "experience", "")
	require.NoError(t, err)
	require.Len(t, s.Resume().Experience, 2)

	require.NoError(t, updateEntry(s, "experience", id, []byte(`{"company":"Acme","isCurrent":true}`)))
	exp := s.Resume().Experience[1]
	assert.Equal(t, id, exp.ID)
	assert.Equal(t, "Acme", exp.Company)
	assert.True(t, exp.IsCurrent)

	require.NoError(t, removeEntry(s, "experience", id))
	assert.Len(t, s.Resume().Experience, 1)
}

func TestListEntries_Activities(t *testing.T) {
	s := resume.NewStore(nil)

	id, err := addEntry(s, "activities", types.ActivityHackathon)
	require.NoError(t, err)

	activities := s.Resume().Activities
	assert.Equal(t, types.ActivityHackathon, activities[len(activities)-1].Type)
	require.NoError(t, updateEntry(s, "activities", id, []byte(`{"title":"Global Game Jam"}`)))
	assert.Equal(t, "Global Game Jam", s.Resume().Activities[len(activities)-1].Title)
}

func TestListEntries_Errors(t *testing.T) {
	s := resume.NewStore(nil)
	existing := s.Resume().Projects[0].ID

	_, err := addEntry(s, "hobbies", "")
	assert.ErrorContains(t, err, "unknown list")

	_, err = addEntry(s, "projects", types.ActivityHackathon)
	assert.ErrorContains(t, err, "only applies to activities")

	_, err = addEntry(s, "activities", "juggling")
	assert.ErrorContains(t, err, "unknown activity type")

	err = updateEntry(s, "projects", "missing", []byte(`{"name":"x"}`))
	assert.ErrorContains(t, err, `no projects entry with id "missing"`)

	err = updateEntry(s, "projects", existing, []byte(`{"title":"x"}`))
	assert.ErrorContains(t, err, "invalid patch")

	err = removeEntry(s, "languages", "missing")
	assert.ErrorContains(t, err, "no languages entry")

	assert.Equal(t, uint64(0), s.Version())
}

func TestListNames(t *testing.T) {
	assert.Equal(t, []string{"activities", "certifications", "education", "experience", "languages", "projects"}, listNames())
}

func TestParseTagSet(t *testing.T) {
	s := resume.NewStore(nil)

	tech, err := parseTagSet("tech")
	require.NoError(t, err)
	tech.add(s, "Go")
	tech.add(s, " go ")
	tech.add(s, "SQL")
	tech.note(s, "Daily drivers")

	soft, err := parseTagSet("Soft")
	require.NoError(t, err)
	soft.add(s, "Mentoring")

	doc := s.Resume()
	assert.Equal(t, []string{"Go", "SQL"}, doc.TechSkills.Tags)
	assert.Equal(t, "Daily drivers", doc.TechSkills.Note)
	assert.Equal(t, []string{"Mentoring"}, doc.SoftSkills.Tags)

	tech.remove(s, "SQL")
	assert.Equal(t, []string{"Go"}, s.Resume().TechSkills.Tags)

	_, err = parseTagSet("hard")
	assert.Error(t, err)
}

func TestSetSection(t *testing.T) {
	s := resume.NewStore(nil)

	require.NoError(t, setSection(s, "projects", "hide"))
	assert.False(t, s.Resume().SectionsVisibility.Visible(types.SectionProjects))

	require.NoError(t, setSection(s, "projects", "toggle"))
	assert.True(t, s.Resume().SectionsVisibility.Visible(types.SectionProjects))

	assert.ErrorContains(t, setSection(s, "hobbies", "hide"), "unknown section")
	assert.ErrorContains(t, setSection(s, "projects", "fold"), "unknown action")
}

func TestOpenDraft_PersistsAndRestores(t *testing.T) {
	storage := snapshot.NewMemoryStorage()

	first := newSession(t, storage)
	require.NoError(t, setField(first.store, "firstName", "Ada"))
	require.NoError(t, first.close())

	second := newSession(t, storage)
	assert.Equal(t, "Ada", second.store.Resume().FirstName)
	assert.True(t, second.store.IsDraft())
}

func TestOpenDraft_ResetClearsSnapshot(t *testing.T) {
	storage := snapshot.NewMemoryStorage()

	session := newSession(t, storage)
	require.NoError(t, setField(session.store, "firstName", "Ada"))
	session.store.Reset()

	_, ok, err := storage.Get(context.Background(), snapshot.DraftKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImportDraft(t *testing.T) {
	storage := snapshot.NewMemoryStorage()
	session := newSession(t, storage)

	report, err := importDraft(context.Background(), session, []byte(`{"fullName":"Lovelace Ada","position":"Analyst","hobby":"chess"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, report.Migrations)
	assert.Equal(t, []string{"hobby"}, report.UnknownKeys)

	doc := session.store.Resume()
	assert.Equal(t, "Lovelace", doc.LastName)
	assert.Equal(t, "Ada", doc.FirstName)

	restored := newSession(t, storage)
	assert.Equal(t, "Analyst", restored.store.Resume().Position)
}

func TestImportDraft_Malformed(t *testing.T) {
	session := newSession(t, snapshot.NewMemoryStorage())
	_, err := importDraft(context.Background(), session, []byte(`[1,2,3]`))
	assert.ErrorContains(t, err, "not a JSON object")
}

func TestNewDraftStorage(t *testing.T) {
	ctx := context.Background()

	storage, release, err := newDraftStorage(ctx, config.DraftConfig{Backend: config.DraftBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &snapshot.MemoryStorage{}, storage)
	assert.NoError(t, release())

	dir := filepath.Join(t.TempDir(), "drafts")
	storage, release, err = newDraftStorage(ctx, config.DraftConfig{Backend: config.DraftBackendFile, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &snapshot.FileStorage{}, storage)
	assert.DirExists(t, dir)
	assert.NoError(t, release())

	_, _, err = newDraftStorage(ctx, config.DraftConfig{Backend: "floppy"})
	assert.ErrorContains(t, err, "unknown draft backend")
}

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	printScore(&buf, resume.NewStore(nil).Score())
	assert.Contains(t, buf.String(), "%")
}

func strPtr(s string) *string { return &s }

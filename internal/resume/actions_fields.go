package resume

import "github.com/jonathan/resume-builder/internal/types"

// SetLastName replaces the last name.
func (s *Store) SetLastName(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.LastName = v; return true })
}

// SetFirstName replaces the first name.
func (s *Store) SetFirstName(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.FirstName = v; return true })
}

// SetPatronymic replaces the patronymic.
func (s *Store) SetPatronymic(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.Patronymic = v; return true })
}

// SetPosition replaces the desired position.
func (s *Store) SetPosition(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.Position = v; return true })
}

// SetSummary replaces the summary text.
func (s *Store) SetSummary(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.Summary = v; return true })
}

// SetTemplateKey replaces the visual template.
func (s *Store) SetTemplateKey(v types.TemplateKey) {
	s.mutate(func(doc *types.Resume) bool { doc.TemplateKey = v; return true })
}

// SetAccentColor replaces the accent color token.
func (s *Store) SetAccentColor(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.AccentColor = v; return true })
}

// SetIncludePhoto sets whether the photo goes into exported output.
func (s *Store) SetIncludePhoto(v bool) {
	s.mutate(func(doc *types.Resume) bool { doc.IncludePhoto = v; return true })
}

// SetPhoto replaces the photo (data URI or URL). An empty string removes it.
func (s *Store) SetPhoto(v string) {
	s.mutate(func(doc *types.Resume) bool { doc.Photo = v; return true })
}

// SetContacts merges the non-nil fields of patch into the contacts.
func (s *Store) SetContacts(patch ContactsPatch) {
	s.mutate(func(doc *types.Resume) bool {
		patch.apply(&doc.Contacts)
		return true
	})
}

// SetEmploymentPreferences merges the set fields of patch into the
// employment preferences.
func (s *Store) SetEmploymentPreferences(patch EmploymentPreferencesPatch) {
	s.mutate(func(doc *types.Resume) bool {
		patch.apply(&doc.EmploymentPreferences)
		return true
	})
}

package resume

import "github.com/jonathan/resume-builder/internal/types"

// SetSectionVisible shows or hides one section. Keys outside the closed
// section set are ignored.
func (s *Store) SetSectionVisible(key types.SectionKey, visible bool) {
	if !key.Valid() {
		s.log.WithField("section", key).Debug("ignoring unknown section key")
		return
	}
	s.mutate(func(doc *types.Resume) bool {
		doc.SectionsVisibility = completeVisibility(doc.SectionsVisibility)
		doc.SectionsVisibility[key] = visible
		return true
	})
}

// ToggleSection flips the visibility of one section; a missing entry counts
// as visible.
func (s *Store) ToggleSection(key types.SectionKey) {
	if !key.Valid() {
		s.log.WithField("section", key).Debug("ignoring unknown section key")
		return
	}
	s.mutate(func(doc *types.Resume) bool {
		doc.SectionsVisibility = completeVisibility(doc.SectionsVisibility)
		doc.SectionsVisibility[key] = !doc.SectionsVisibility[key]
		return true
	})
}

// ShowAllSections makes every section visible.
func (s *Store) ShowAllSections() {
	s.mutate(func(doc *types.Resume) bool {
		doc.SectionsVisibility = DefaultVisibility()
		return true
	})
}

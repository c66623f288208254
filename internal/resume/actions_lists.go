package resume

import "github.com/jonathan/resume-builder/internal/types"

// List operations share one shape for all six lists. Add appends a fresh
// entity and returns its id. Update and Remove silently ignore unknown ids.
// Remove re-seeds a list it empties with one fresh entity.

// AddExperience appends an empty experience entry.
func (s *Store) AddExperience() string {
	item := NewExperience()
	s.mutate(func(doc *types.Resume) bool {
		doc.Experience = append(doc.Experience, item)
		return true
	})
	return item.ID
}

// UpdateExperience merges patch into the experience entry with the given id.
func (s *Store) UpdateExperience(id string, patch ExperiencePatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Experience, id, experienceID, patch.apply)
	})
}

// RemoveExperience removes the experience entry with the given id.
func (s *Store) RemoveExperience(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Experience, removed = removeByID(doc.Experience, id, experienceID, NewExperience)
		return removed
	})
}

// AddProject appends an empty project entry.
func (s *Store) AddProject() string {
	item := NewProject()
	s.mutate(func(doc *types.Resume) bool {
		doc.Projects = append(doc.Projects, item)
		return true
	})
	return item.ID
}

// UpdateProject merges patch into the project entry with the given id.
func (s *Store) UpdateProject(id string, patch ProjectPatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Projects, id, projectID, patch.apply)
	})
}

// RemoveProject removes the project entry with the given id.
func (s *Store) RemoveProject(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Projects, removed = removeByID(doc.Projects, id, projectID, NewProject)
		return removed
	})
}

// AddEducation appends an empty education entry.
func (s *Store) AddEducation() string {
	item := NewEducation()
	s.mutate(func(doc *types.Resume) bool {
		doc.Education = append(doc.Education, item)
		return true
	})
	return item.ID
}

// UpdateEducation merges patch into the education entry with the given id.
func (s *Store) UpdateEducation(id string, patch EducationPatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Education, id, educationID, patch.apply)
	})
}

// RemoveEducation removes the education entry with the given id.
func (s *Store) RemoveEducation(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Education, removed = removeByID(doc.Education, id, educationID, NewEducation)
		return removed
	})
}

// AddLanguage appends an empty language entry.
func (s *Store) AddLanguage() string {
	item := NewLanguage()
	s.mutate(func(doc *types.Resume) bool {
		doc.Languages = append(doc.Languages, item)
		return true
	})
	return item.ID
}

// UpdateLanguage merges patch into the language entry with the given id.
func (s *Store) UpdateLanguage(id string, patch LanguagePatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Languages, id, languageID, patch.apply)
	})
}

// RemoveLanguage removes the language entry with the given id.
func (s *Store) RemoveLanguage(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Languages, removed = removeByID(doc.Languages, id, languageID, NewLanguage)
		return removed
	})
}

// AddCertification appends an empty certification entry.
func (s *Store) AddCertification() string {
	item := NewCertification()
	s.mutate(func(doc *types.Resume) bool {
		doc.Certifications = append(doc.Certifications, item)
		return true
	})
	return item.ID
}

// UpdateCertification merges patch into the certification entry with the given id.
func (s *Store) UpdateCertification(id string, patch CertificationPatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Certifications, id, certificationID, patch.apply)
	})
}

// RemoveCertification removes the certification entry with the given id.
func (s *Store) RemoveCertification(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Certifications, removed = removeByID(doc.Certifications, id, certificationID, NewCertification)
		return removed
	})
}

// AddActivity appends an empty activity of the given type; an empty type
// means open-source.
func (s *Store) AddActivity(kind types.ActivityType) string {
	item := NewActivity(kind)
	s.mutate(func(doc *types.Resume) bool {
		doc.Activities = append(doc.Activities, item)
		return true
	})
	return item.ID
}

// UpdateActivity merges patch into the activity with the given id.
func (s *Store) UpdateActivity(id string, patch ActivityPatch) {
	s.mutate(func(doc *types.Resume) bool {
		return updateByID(doc.Activities, id, activityID, patch.apply)
	})
}

// RemoveActivity removes the activity with the given id.
func (s *Store) RemoveActivity(id string) {
	s.mutate(func(doc *types.Resume) bool {
		var removed bool
		doc.Activities, removed = removeByID(doc.Activities, id, activityID, newDefaultActivity)
		return removed
	})
}

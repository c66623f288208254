package resume

import "github.com/jonathan/resume-builder/internal/types"

// Tag operations. Add is fuzzy (normalized-equal tags are duplicates), remove
// is exact: RemoveTechSkillTag("react") leaves "React" in place.

// AddTechSkillTag appends tag unless it is blank or already present.
func (s *Store) AddTechSkillTag(tag string) {
	s.mutate(func(doc *types.Resume) bool { return addTag(&doc.TechSkills, tag) })
}

// RemoveTechSkillTag removes every tech skill exactly equal to tag.
func (s *Store) RemoveTechSkillTag(tag string) {
	s.mutate(func(doc *types.Resume) bool { return removeTag(&doc.TechSkills, tag) })
}

// SetTechSkillsTags replaces the tech skills with the deduplicated tags.
func (s *Store) SetTechSkillsTags(tags []string) {
	deduped := DedupeTags(tags)
	s.mutate(func(doc *types.Resume) bool {
		doc.TechSkills.Tags = deduped
		return true
	})
}

// SetTechSkillsNote replaces the tech skills note.
func (s *Store) SetTechSkillsNote(note string) {
	s.mutate(func(doc *types.Resume) bool {
		doc.TechSkills.Note = note
		return true
	})
}

// AddSoftSkillTag appends tag unless it is blank or already present.
func (s *Store) AddSoftSkillTag(tag string) {
	s.mutate(func(doc *types.Resume) bool { return addTag(&doc.SoftSkills, tag) })
}

// RemoveSoftSkillTag removes every soft skill exactly equal to tag.
func (s *Store) RemoveSoftSkillTag(tag string) {
	s.mutate(func(doc *types.Resume) bool { return removeTag(&doc.SoftSkills, tag) })
}

// SetSoftSkillsTags replaces the soft skills with the deduplicated tags.
func (s *Store) SetSoftSkillsTags(tags []string) {
	deduped := DedupeTags(tags)
	s.mutate(func(doc *types.Resume) bool {
		doc.SoftSkills.Tags = deduped
		return true
	})
}

// SetSoftSkillsNote replaces the soft skills note.
func (s *Store) SetSoftSkillsNote(note string) {
	s.mutate(func(doc *types.Resume) bool {
		doc.SoftSkills.Note = note
		return true
	})
}

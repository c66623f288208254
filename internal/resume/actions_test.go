package resume

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAddTechSkillTag_IgnoresBlank(t *testing.T) {
	s := NewStore(nil)
	s.AddTechSkillTag("")
	s.AddTechSkillTag("   ")

	assert.Empty(t, s.Resume().TechSkills.Tags)
	assert.Equal(t, uint64(0), s.Version())
}

func TestTags_FuzzyAddExactRemove(t *testing.T) {
	s := NewStore(nil)
	s.AddTechSkillTag("React")
	s.AddTechSkillTag("  react ")
	assert.Equal(t, []string{"React"}, s.Resume().TechSkills.Tags)

	s.RemoveTechSkillTag("react")
	assert.Equal(t, []string{"React"}, s.Resume().TechSkills.Tags)

	s.RemoveTechSkillTag("React")
	assert.Empty(t, s.Resume().TechSkills.Tags)
}

func TestAddTechSkillTag_TrimsAndAppends(t *testing.T) {
	s := NewStore(nil)
	s.AddTechSkillTag("Go")
	s.AddTechSkillTag("  Kubernetes  ")
	s.AddTechSkillTag("machine   learning")
	s.AddTechSkillTag("Machine Learning")

	assert.Equal(t, []string{"Go", "Kubernetes", "machine   learning"}, s.Resume().TechSkills.Tags)
}

func TestSetTechSkillsTags_DedupesFirstSeen(t *testing.T) {
	s := NewStore(nil)
	s.SetTechSkillsTags([]string{"B", "  a ", "A", "b"})
	assert.Equal(t, []string{"B", "a"}, s.Resume().TechSkills.Tags)

	s.SetTechSkillsTags(nil)
	assert.Equal(t, []string{}, s.Resume().TechSkills.Tags)
}

func TestSoftSkills(t *testing.T) {
	s := NewStore(nil)
	s.AddSoftSkillTag("Mentoring")
	s.AddSoftSkillTag("mentoring")
	s.SetSoftSkillsNote("Led guilds")
	assert.Equal(t, []string{"Mentoring"}, s.Resume().SoftSkills.Tags)
	assert.Equal(t, "Led guilds", s.Resume().SoftSkills.Note)

	s.SetSoftSkillsTags([]string{"Writing", "", "writing ", "Hiring"})
	assert.Equal(t, []string{"Writing", "Hiring"}, s.Resume().SoftSkills.Tags)

	s.RemoveSoftSkillTag("Writing")
	assert.Equal(t, []string{"Hiring"}, s.Resume().SoftSkills.Tags)
	assert.Empty(t, s.Resume().TechSkills.Tags, "soft skill operations must not touch tech skills")
}

func TestSetTechSkillsNote(t *testing.T) {
	s := NewStore(nil)
	s.AddTechSkillTag("Go")
	s.SetTechSkillsNote("Mostly backend")

	skills := s.Resume().TechSkills
	assert.Equal(t, "Mostly backend", skills.Note)
	assert.Equal(t, []string{"Go"}, skills.Tags)
}

func TestRemoveTag_RemovesAllExactDuplicates(t *testing.T) {
	set := types.TagSet{Tags: []string{"Go", "Rust", "Go"}}
	assert.True(t, removeTag(&set, "Go"))
	assert.Equal(t, []string{"Rust"}, set.Tags)
	assert.False(t, removeTag(&set, "Go"))
}

func TestSectionVisibility(t *testing.T) {
	s := NewStore(nil)

	s.SetSectionVisible(types.SectionPhoto, false)
	assert.False(t, s.Resume().SectionsVisibility[types.SectionPhoto])

	s.ToggleSection(types.SectionPhoto)
	assert.True(t, s.Resume().SectionsVisibility[types.SectionPhoto])

	s.ToggleSection(types.SectionSummary)
	s.SetSectionVisible(types.SectionLanguages, false)
	visibility := s.Resume().SectionsVisibility
	assert.False(t, visibility[types.SectionSummary])
	assert.False(t, visibility[types.SectionLanguages])
	assert.Len(t, visibility, len(types.SectionKeys))

	s.ShowAllSections()
	for _, key := range types.SectionKeys {
		assert.True(t, s.Resume().SectionsVisibility[key])
	}
}

func TestSectionVisibility_FillsMissingKeys(t *testing.T) {
	s := NewStore(nil)
	s.Restore(types.Resume{SectionsVisibility: types.SectionsVisibility{types.SectionSummary: false}}, true)

	s.ToggleSection(types.SectionContacts)

	visibility := s.Resume().SectionsVisibility
	assert.Len(t, visibility, len(types.SectionKeys))
	assert.False(t, visibility[types.SectionContacts])
	assert.False(t, visibility[types.SectionSummary])
	assert.True(t, visibility[types.SectionActivities])
}

func TestSectionVisibility_UnknownKeyIgnored(t *testing.T) {
	s := NewStore(nil)
	s.SetSectionVisible("hobbies", false)
	s.ToggleSection("hobbies")

	assert.Equal(t, uint64(0), s.Version())
	assert.NotContains(t, s.Resume().SectionsVisibility, types.SectionKey("hobbies"))
}

package resume

import (
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// Defaults applied to fresh and normalized documents.
const (
	DefaultTemplate     = types.TemplateClassic
	DefaultAccentColor  = "#2563eb"
	DefaultIncludePhoto = true
	DefaultActivityType = types.ActivityOpenSource
)

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

// New returns a fresh document: one empty placeholder item per list, empty
// tag sets, the default template and accent color, photo included and all
// sections visible.
func New() types.Resume {
	return types.Resume{
		Experience:     []types.Experience{NewExperience()},
		Projects:       []types.Project{NewProject()},
		Education:      []types.Education{NewEducation()},
		Languages:      []types.Language{NewLanguage()},
		Certifications: []types.Certification{NewCertification()},
		Activities:     []types.Activity{NewActivity(DefaultActivityType)},

		TechSkills:            NewTagSet(),
		SoftSkills:            NewTagSet(),
		EmploymentPreferences: NewEmploymentPreferences(),

		TemplateKey:        DefaultTemplate,
		AccentColor:        DefaultAccentColor,
		IncludePhoto:       DefaultIncludePhoto,
		SectionsVisibility: DefaultVisibility(),
	}
}

// NewExperience returns an empty experience entry with a fresh id.
func NewExperience() types.Experience {
	return types.Experience{ID: NewID()}
}

// NewProject returns an empty project entry with a fresh id.
func NewProject() types.Project {
	return types.Project{ID: NewID()}
}

// NewEducation returns an empty education entry with a fresh id.
func NewEducation() types.Education {
	return types.Education{ID: NewID()}
}

// NewLanguage returns an empty language entry with a fresh id.
func NewLanguage() types.Language {
	return types.Language{ID: NewID()}
}

// NewCertification returns an empty certification entry with a fresh id.
func NewCertification() types.Certification {
	return types.Certification{ID: NewID()}
}

// NewActivity returns an empty activity of the given type with a fresh id.
// An empty type means open-source.
func NewActivity(kind types.ActivityType) types.Activity {
	if kind == "" {
		kind = DefaultActivityType
	}
	return types.Activity{ID: NewID(), Type: kind}
}

func newDefaultActivity() types.Activity {
	return NewActivity(DefaultActivityType)
}

// NewTagSet returns an empty tag set.
func NewTagSet() types.TagSet {
	return types.TagSet{Tags: []string{}}
}

// NewEmploymentPreferences returns preferences with no selections.
func NewEmploymentPreferences() types.EmploymentPreferences {
	return types.EmploymentPreferences{
		EmploymentType: []types.EmploymentType{},
		WorkFormat:     []types.WorkFormat{},
	}
}

// DefaultVisibility returns a visibility map with every section shown.
func DefaultVisibility() types.SectionsVisibility {
	v := make(types.SectionsVisibility, len(types.SectionKeys))
	for _, key := range types.SectionKeys {
		v[key] = true
	}
	return v
}

// completeVisibility fills any missing section key with true.
func completeVisibility(v types.SectionsVisibility) types.SectionsVisibility {
	out := DefaultVisibility()
	for key, shown := range v {
		if key.Valid() {
			out[key] = shown
		}
	}
	return out
}

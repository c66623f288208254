// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TemplateKey selects the visual template used when rendering a resume.
type TemplateKey string

// Known templates.
const (
	TemplateClassic TemplateKey = "classic"
	TemplateModern  TemplateKey = "modern"
	TemplateMinimal TemplateKey = "minimal"
	TemplateCompact TemplateKey = "compact"
)

// TemplateKeys lists the known templates in display order.
var TemplateKeys = []TemplateKey{TemplateClassic, TemplateModern, TemplateMinimal, TemplateCompact}

// Valid reports whether k is a known template.
func (k TemplateKey) Valid() bool {
	for _, known := range TemplateKeys {
		if k == known {
			return true
		}
	}
	return false
}

// EmploymentType is a kind of employment a candidate is open to.
type EmploymentType string

// Employment types.
const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentFreelance  EmploymentType = "freelance"
)

// WorkFormat is a place-of-work preference.
type WorkFormat string

// Work formats.
const (
	WorkOffice WorkFormat = "office"
	WorkRemote WorkFormat = "remote"
	WorkHybrid WorkFormat = "hybrid"
)

// ActivityType classifies an entry in the activities section.
type ActivityType string

// Activity types.
const (
	ActivityOpenSource   ActivityType = "open-source"
	ActivityVolunteering ActivityType = "volunteering"
	ActivityHackathon    ActivityType = "hackathon"
	ActivityPublication  ActivityType = "publication"
	ActivitySpeaking     ActivityType = "speaking"
	ActivityOther        ActivityType = "other"
)

// SectionKey names a toggleable resume section.
type SectionKey string

// Section keys. The set is closed.
const (
	SectionPhoto                 SectionKey = "photo"
	SectionSummary               SectionKey = "summary"
	SectionContacts              SectionKey = "contacts"
	SectionExperience            SectionKey = "experience"
	SectionProjects              SectionKey = "projects"
	SectionTechSkills            SectionKey = "techSkills"
	SectionSoftSkills            SectionKey = "softSkills"
	SectionEducation             SectionKey = "education"
	SectionLanguages             SectionKey = "languages"
	SectionEmploymentPreferences SectionKey = "employmentPreferences"
	SectionCertifications        SectionKey = "certifications"
	SectionActivities            SectionKey = "activities"
)

// SectionKeys lists every section key in display order.
var SectionKeys = []SectionKey{
	SectionPhoto,
	SectionSummary,
	SectionContacts,
	SectionExperience,
	SectionProjects,
	SectionTechSkills,
	SectionSoftSkills,
	SectionEducation,
	SectionLanguages,
	SectionEmploymentPreferences,
	SectionCertifications,
	SectionActivities,
}

// Valid reports whether k belongs to the closed section key set.
func (k SectionKey) Valid() bool {
	for _, known := range SectionKeys {
		if k == known {
			return true
		}
	}
	return false
}

// SectionsVisibility maps each section to whether it is shown.
type SectionsVisibility map[SectionKey]bool

// Visible returns the visibility of key, treating a missing key as visible.
func (v SectionsVisibility) Visible(key SectionKey) bool {
	shown, ok := v[key]
	return !ok || shown
}

// Contacts holds the optional contact channels of a candidate.
type Contacts struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Telegram string `json:"telegram"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// Experience is a single job entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description"`
}

// Project is a portfolio project entry.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Link         string `json:"link"`
	Technologies string `json:"technologies"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

// Education is a degree or course entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Language is a spoken language with a proficiency level.
type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Certification is a certificate or license.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Link   string `json:"link"`
}

// Activity is an open-source contribution, talk, hackathon and the like.
type Activity struct {
	ID           string       `json:"id"`
	Type         ActivityType `json:"type"`
	Title        string       `json:"title"`
	Organization string       `json:"organization"`
	Link         string       `json:"link"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Description  string       `json:"description"`
}

// TagSet is an ordered list of unique tags plus a free-text note.
type TagSet struct {
	Tags []string `json:"tags"`
	Note string   `json:"note"`
}

// EmploymentPreferences describes what kind of work the candidate is looking for.
type EmploymentPreferences struct {
	EmploymentType    []EmploymentType `json:"employmentType"`
	WorkFormat        []WorkFormat     `json:"workFormat"`
	Relocation        *bool            `json:"relocation,omitempty"`
	Timezone          string           `json:"timezone"`
	WorkAuthorization string           `json:"workAuthorization"`
}

// Resume is the root document edited by the builder.
type Resume struct {
	LastName   string   `json:"lastName"`
	FirstName  string   `json:"firstName"`
	Patronymic string   `json:"patronymic"`
	Position   string   `json:"position"`
	Contacts   Contacts `json:"contacts"`
	Summary    string   `json:"summary"`

	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Activities     []Activity      `json:"activities"`

	TechSkills            TagSet                `json:"techSkills"`
	SoftSkills            TagSet                `json:"softSkills"`
	EmploymentPreferences EmploymentPreferences `json:"employmentPreferences"`

	TemplateKey        TemplateKey        `json:"templateKey"`
	AccentColor        string             `json:"accentColor"`
	IncludePhoto       bool               `json:"includePhoto"`
	Photo              string             `json:"photo,omitempty"`
	SectionsVisibility SectionsVisibility `json:"sectionsVisibility"`
}

// Clone returns a deep copy of r. Slices and maps are never shared with the original.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = cloneSlice(r.Experience)
	out.Projects = cloneSlice(r.Projects)
	out.Education = cloneSlice(r.Education)
	out.Languages = cloneSlice(r.Languages)
	out.Certifications = cloneSlice(r.Certifications)
	out.Activities = cloneSlice(r.Activities)
	out.TechSkills = r.TechSkills.Clone()
	out.SoftSkills = r.SoftSkills.Clone()
	out.EmploymentPreferences = r.EmploymentPreferences.Clone()
	if r.SectionsVisibility != nil {
		out.SectionsVisibility = make(SectionsVisibility, len(r.SectionsVisibility))
		for k, v := range r.SectionsVisibility {
			out.SectionsVisibility[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t TagSet) Clone() TagSet {
	return TagSet{Tags: cloneSlice(t.Tags), Note: t.Note}
}

// Clone returns a deep copy of p.
func (p EmploymentPreferences) Clone() EmploymentPreferences {
	out := p
	out.EmploymentType = cloneSlice(p.EmploymentType)
	out.WorkFormat = cloneSlice(p.WorkFormat)
	if p.Relocation != nil {
		v := *p.Relocation
		out.Relocation = &v
	}
	return out
}

// FullName joins the name parts in "Last First Patronymic" order, skipping empty parts.
func (r Resume) FullName() string {
	name := ""
	for _, part := range []string{r.LastName, r.FirstName, r.Patronymic} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

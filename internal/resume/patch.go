package resume

import "github.com/jonathan/resume-builder/internal/types"

// Patch types carry only the fields a caller wants to change. A nil field is
// left untouched. None of them carries an ID, so ids cannot be rewritten.

// ContactsPatch updates a subset of contact channels.
type ContactsPatch struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
}

func (p ContactsPatch) apply(c *types.Contacts) {
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.Location, p.Location)
	set(&c.Telegram, p.Telegram)
	set(&c.GitHub, p.GitHub)
	set(&c.LinkedIn, p.LinkedIn)
	set(&c.Website, p.Website)
}

// EmploymentPreferencesPatch updates a subset of employment preferences.
// A non-nil slice replaces the whole set. ClearRelocation resets relocation
// to "not stated" and wins over Relocation.
type EmploymentPreferencesPatch struct {
	EmploymentType    []types.EmploymentType `json:"employmentType,omitempty"`
	WorkFormat        []types.WorkFormat     `json:"workFormat,omitempty"`
	Relocation        *bool                  `json:"relocation,omitempty"`
	ClearRelocation   bool                   `json:"clearRelocation,omitempty"`
	Timezone          *string                `json:"timezone,omitempty"`
	WorkAuthorization *string                `json:"workAuthorization,omitempty"`
}

func (p EmploymentPreferencesPatch) apply(e *types.EmploymentPreferences) {
	if p.EmploymentType != nil {
		e.EmploymentType = uniqueValues(p.EmploymentType)
	}
	if p.WorkFormat != nil {
		e.WorkFormat = uniqueValues(p.WorkFormat)
	}
	if p.Relocation != nil {
		v := *p.Relocation
		e.Relocation = &v
	}
	if p.ClearRelocation {
		e.Relocation = nil
	}
	set(&e.Timezone, p.Timezone)
	set(&e.WorkAuthorization, p.WorkAuthorization)
}

// ExperiencePatch updates fields of one experience entry.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	IsCurrent   *bool   `json:"isCurrent,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p ExperiencePatch) apply(e *types.Experience) {
	set(&e.Company, p.Company)
	set(&e.Position, p.Position)
	set(&e.Location, p.Location)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.IsCurrent, p.IsCurrent)
	set(&e.Description, p.Description)
}

// ProjectPatch updates fields of one project entry.
type ProjectPatch struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	Link         *string `json:"link,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	Description  *string `json:"description,omitempty"`
}

func (p ProjectPatch) apply(e *types.Project) {
	set(&e.Name, p.Name)
	set(&e.Role, p.Role)
	set(&e.Link, p.Link)
	set(&e.Technologies, p.Technologies)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.Description, p.Description)
}

// EducationPatch updates fields of one education entry.
type EducationPatch struct {
	Institution *string `json:"institution,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Field       *string `json:"field,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p EducationPatch) apply(e *types.Education) {
	set(&e.Institution, p.Institution)
	set(&e.Degree, p.Degree)
	set(&e.Field, p.Field)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.Description, p.Description)
}

// LanguagePatch updates fields of one language entry.
type LanguagePatch struct {
	Name  *string `json:"name,omitempty"`
	Level *string `json:"level,omitempty"`
}

func (p LanguagePatch) apply(e *types.Language) {
	set(&e.Name, p.Name)
	set(&e.Level, p.Level)
}

// CertificationPatch updates fields of one certification entry.
type CertificationPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Date   *string `json:"date,omitempty"`
	Link   *string `json:"link,omitempty"`
}

func (p CertificationPatch) apply(e *types.Certification) {
	set(&e.Name, p.Name)
	set(&e.Issuer, p.Issuer)
	set(&e.Date, p.Date)
	set(&e.Link, p.Link)
}

// ActivityPatch updates fields of one activity entry.
type ActivityPatch struct {
	Type         *types.ActivityType `json:"type,omitempty"`
	Title        *string             `json:"title,omitempty"`
	Organization *string             `json:"organization,omitempty"`
	Link         *string             `json:"link,omitempty"`
	StartDate    *string             `json:"startDate,omitempty"`
	EndDate      *string             `json:"endDate,omitempty"`
	Description  *string             `json:"description,omitempty"`
}

func (p ActivityPatch) apply(e *types.Activity) {
	set(&e.Type, p.Type)
	set(&e.Title, p.Title)
	set(&e.Organization, p.Organization)
	set(&e.Link, p.Link)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.Description, p.Description)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func uniqueValues[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package resume

import (
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Score is the completeness of a resume.
type Score struct {
	// Percent is the weighted share of satisfied checks, 0 to 100.
	Percent int `json:"percent"`
	// Missing names the checks that earned less than their full weight, in
	// checklist order.
	Missing []string `json:"missing"`
}

// Check names reported in Score.Missing.
const (
	CheckIdentity   = "identity"
	CheckContact    = "contact"
	CheckLocation   = "location"
	CheckSummary    = "summary"
	CheckExperience = "experience"
	CheckEducation  = "education"
	CheckTechSkills = "techSkills"
	CheckSoftSkills = "softSkills"
	CheckLanguages  = "languages"
	CheckProjects   = "projects"
	CheckPhoto      = "photo"
)

// targetTechSkillTags is the tag count that earns the full tech skills weight.
const targetTechSkillTags = 5

type check struct {
	name   string
	weight float64
	// earned returns the satisfied share in [0, 1].
	earned func(types.Resume) float64
}

var checklist = []check{
	{CheckIdentity, 15, func(r types.Resume) float64 {
		return boolShare(filled(r.FirstName) && filled(r.LastName) && filled(r.Position))
	}},
	{CheckContact, 10, func(r types.Resume) float64 {
		return boolShare(filled(r.Contacts.Email) || filled(r.Contacts.Phone))
	}},
	{CheckLocation, 5, func(r types.Resume) float64 { return boolShare(filled(r.Contacts.Location)) }},
	{CheckSummary, 10, func(r types.Resume) float64 { return boolShare(filled(r.Summary)) }},
	{CheckExperience, 20, func(r types.Resume) float64 {
		for _, e := range r.Experience {
			if filled(e.Company) && filled(e.Position) {
				return 1
			}
		}
		return 0
	}},
	{CheckEducation, 10, func(r types.Resume) float64 {
		for _, e := range r.Education {
			if filled(e.Institution) {
				return 1
			}
		}
		return 0
	}},
	{CheckTechSkills, 10, func(r types.Resume) float64 {
		return math.Min(float64(len(r.TechSkills.Tags)), targetTechSkillTags) / targetTechSkillTags
	}},
	{CheckSoftSkills, 5, func(r types.Resume) float64 { return boolShare(len(r.SoftSkills.Tags) > 0) }},
	{CheckLanguages, 5, func(r types.Resume) float64 {
		for _, l := range r.Languages {
			if filled(l.Name) {
				return 1
			}
		}
		return 0
	}},
	{CheckProjects, 5, func(r types.Resume) float64 {
		for _, p := range r.Projects {
			if filled(p.Name) {
				return 1
			}
		}
		return 0
	}},
	{CheckPhoto, 5, func(r types.Resume) float64 { return boolShare(filled(r.Photo)) }},
}

// Completeness scores how much of the resume has been filled in. The photo
// check only counts when the photo is meant to be included.
func Completeness(r types.Resume) Score {
	var earned, possible float64
	missing := []string{}

	for _, c := range checklist {
		if c.name == CheckPhoto && !r.IncludePhoto {
			continue
		}
		share := c.earned(r)
		possible += c.weight
		earned += c.weight * share
		if share < 1 {
			missing = append(missing, c.name)
		}
	}

	percent := 0
	if possible > 0 {
		percent = int(math.Round(earned * 100 / possible))
	}
	return Score{Percent: percent, Missing: missing}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func boolShare(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

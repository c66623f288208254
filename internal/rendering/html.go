package rendering

import (
	"embed"
	"html/template"
	"regexp"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/resume.html templates/style.css
var templateFS embed.FS

type compiledPage struct {
	tmpl  *template.Template
	style template.CSS
}

var loadPage = sync.OnceValues(func() (*compiledPage, error) {
	style, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, &TemplateError{Message: "failed to read stylesheet", Cause: err}
	}

	tmpl, err := template.New("resume.html").Funcs(template.FuncMap{
		"dates": formatDates,
	}).ParseFS(templateFS, "templates/resume.html")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}

	return &compiledPage{tmpl: tmpl, style: template.CSS(style)}, nil
})

// RenderHTML renders doc as a standalone HTML page in the given locale.
// Hidden sections and sections without content are left out; the photo
// appears only when it is included, visible and set.
func RenderHTML(doc types.Resume, locale string) (string, error) {
	p, err := loadPage()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := p.tmpl.Execute(&out, buildView(doc, locale, p.style)); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

type contactItem struct {
	Label string
	Value string
	Href  string
}

type prefItem struct {
	Label string
	Value string
}

// view is the data passed to the template
type view struct {
	Lang        string
	TemplateKey types.TemplateKey
	Style       template.CSS
	Accent      template.CSS
	Labels      Labels

	Name     string
	Position string
	Summary  string
	Photo    template.URL
	Show     map[string]bool

	Contacts       []contactItem
	Experience     []types.Experience
	Projects       []types.Project
	Education      []types.Education
	Languages      []types.Language
	Certifications []types.Certification
	Activities     []types.Activity
	TechSkills     types.TagSet
	SoftSkills     types.TagSet
	Preferences    []prefItem
}

func buildView(doc types.Resume, locale string, style template.CSS) view {
	lang := NormalizeLocale(locale)
	labels := LabelsFor(lang)

	templateKey := doc.TemplateKey
	if !templateKey.Valid() {
		templateKey = resume.DefaultTemplate
	}

	v := view{
		Lang:        lang,
		TemplateKey: templateKey,
		Style:       style,
		Accent:      accentCSS(doc.AccentColor),
		Labels:      labels,

		Name:     doc.FullName(),
		Position: strings.TrimSpace(doc.Position),
		Summary:  strings.TrimSpace(doc.Summary),

		Contacts:       contactItems(doc.Contacts, labels),
		Experience:     withContent(doc.Experience, func(e types.Experience) types.Experience { e.ID = ""; return e }),
		Projects:       withContent(doc.Projects, func(e types.Project) types.Project { e.ID = ""; return e }),
		Education:      withContent(doc.Education, func(e types.Education) types.Education { e.ID = ""; return e }),
		Languages:      withContent(doc.Languages, func(e types.Language) types.Language { e.ID = ""; return e }),
		Certifications: withContent(doc.Certifications, func(e types.Certification) types.Certification { e.ID = ""; return e }),
		Activities:     withContent(doc.Activities, func(e types.Activity) types.Activity { e.ID = ""; e.Type = ""; return e }),
		TechSkills:     doc.TechSkills,
		SoftSkills:     doc.SoftSkills,
		Preferences:    preferenceItems(doc.EmploymentPreferences, labels),
	}

	photo, photoOK := photoURL(doc.Photo)
	v.Photo = photo

	present := map[types.SectionKey]bool{
		types.SectionPhoto:                 doc.IncludePhoto && photoOK,
		types.SectionSummary:               v.Summary != "",
		types.SectionContacts:              len(v.Contacts) > 0,
		types.SectionExperience:            len(v.Experience) > 0,
		types.SectionProjects:              len(v.Projects) > 0,
		types.SectionTechSkills:            len(doc.TechSkills.Tags) > 0 || strings.TrimSpace(doc.TechSkills.Note) != "",
		types.SectionSoftSkills:            len(doc.SoftSkills.Tags) > 0 || strings.TrimSpace(doc.SoftSkills.Note) != "",
		types.SectionEducation:             len(v.Education) > 0,
		types.SectionLanguages:             len(v.Languages) > 0,
		types.SectionEmploymentPreferences: len(v.Preferences) > 0,
		types.SectionCertifications:        len(v.Certifications) > 0,
		types.SectionActivities:            len(v.Activities) > 0,
	}

	v.Show = make(map[string]bool, len(present))
	for _, key := range types.SectionKeys {
		v.Show[string(key)] = present[key] && doc.SectionsVisibility.Visible(key)
	}
	return v
}

// withContent drops placeholder entities: those that are empty apart from
// the fields blank clears.
func withContent[T comparable](items []T, blank func(T) T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, item := range items {
		if blank(item) != zero {
			out = append(out, item)
		}
	}
	return out
}

var (
	hexColor   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// accentCSS returns the accent color as a CSS value. Anything that is not
// a hex or named color falls back to the default accent.
func accentCSS(color string) template.CSS {
	color = strings.TrimSpace(color)
	if hexColor.MatchString(color) || namedColor.MatchString(color) {
		return template.CSS(color)
	}
	return template.CSS(resume.DefaultAccentColor)
}

// photoURL accepts inline images and http(s) URLs.
func photoURL(photo string) (template.URL, bool) {
	photo = strings.TrimSpace(photo)
	switch {
	case strings.HasPrefix(photo, "data:image/"),
		strings.HasPrefix(photo, "https://"),
		strings.HasPrefix(photo, "http://"):
		return template.URL(photo), true
	default:
		return "", false
	}
}

func contactItems(c types.Contacts, labels Labels) []contactItem {
	var items []contactItem
	add := func(label, value, href string) {
		value = strings.TrimSpace(value)
		if value != "" {
			items = append(items, contactItem{Label: label, Value: value, Href: href})
		}
	}

	add(labels.Email, c.Email, "mailto:"+strings.TrimSpace(c.Email))
	add(labels.Phone, c.Phone, "")
	add(labels.Location, c.Location, "")
	add(labels.Telegram, c.Telegram, telegramURL(c.Telegram))
	add(labels.GitHub, c.GitHub, webURL(c.GitHub, "https://github.com/"))
	add(labels.LinkedIn, c.LinkedIn, webURL(c.LinkedIn, "https://www.linkedin.com/in/"))
	add(labels.Website, c.Website, webURL(c.Website, "https://"))
	return items
}

func telegramURL(handle string) string {
	handle = strings.TrimSpace(handle)
	if strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://") {
		return handle
	}
	return "https://t.me/" + strings.TrimPrefix(handle, "@")
}

// webURL returns value when it already is a URL, otherwise base+value.
func webURL(value, base string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return base + strings.TrimPrefix(value, "@")
}

func preferenceItems(p types.EmploymentPreferences, labels Labels) []prefItem {
	var items []prefItem

	if len(p.EmploymentType) > 0 {
		names := make([]string, 0, len(p.EmploymentType))
		for _, t := range p.EmploymentType {
			names = append(names, labelOr(labels.EmploymentTypes[t], string(t)))
		}
		items = append(items, prefItem{Label: labels.EmploymentType, Value: strings.Join(names, ", ")})
	}
	if len(p.WorkFormat) > 0 {
		names := make([]string, 0, len(p.WorkFormat))
		for _, f := range p.WorkFormat {
			names = append(names, labelOr(labels.WorkFormats[f], string(f)))
		}
		items = append(items, prefItem{Label: labels.WorkFormat, Value: strings.Join(names, ", ")})
	}
	if p.Relocation != nil {
		value := labels.No
		if *p.Relocation {
			value = labels.Yes
		}
		items = append(items, prefItem{Label: labels.Relocation, Value: value})
	}
	if tz := strings.TrimSpace(p.Timezone); tz != "" {
		items = append(items, prefItem{Label: labels.Timezone, Value: tz})
	}
	if auth := strings.TrimSpace(p.WorkAuthorization); auth != "" {
		items = append(items, prefItem{Label: labels.WorkAuthorization, Value: auth})
	}
	return items
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// formatDates renders a date range. A current entry ends with present.
func formatDates(start, end string, current bool, present string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if current {
		end = present
	}
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

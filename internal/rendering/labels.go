package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Supported locales.
const (
	LocaleEN = "en"
	LocaleRU = "ru"
)

// DefaultLocale is used for empty or unknown locales.
const DefaultLocale = LocaleEN

// Labels holds the fixed strings of a rendered resume in one language.
type Labels struct {
	Summary               string
	Contacts              string
	Experience            string
	Projects              string
	TechSkills            string
	SoftSkills            string
	Education             string
	Languages             string
	EmploymentPreferences string
	Certifications        string
	Activities            string

	Email    string
	Phone    string
	Location string
	Telegram string
	GitHub   string
	LinkedIn string
	Website  string

	Present           string
	Technologies      string
	EmploymentType    string
	WorkFormat        string
	Relocation        string
	Timezone          string
	WorkAuthorization string
	Yes               string
	No                string

	EmploymentTypes map[types.EmploymentType]string
	WorkFormats     map[types.WorkFormat]string
	ActivityTypes   map[types.ActivityType]string
}

var labelsByLocale = map[string]Labels{
	LocaleEN: {
		Summary:               "Summary",
		Contacts:              "Contacts",
		Experience:            "Experience",
		Projects:              "Projects",
		TechSkills:            "Technical Skills",
		SoftSkills:            "Soft Skills",
		Education:             "Education",
		Languages:             "Languages",
		EmploymentPreferences: "Employment Preferences",
		Certifications:        "Certifications",
		Activities:            "Activities",

		Email:    "Email",
		Phone:    "Phone",
		Location: "Location",
		Telegram: "Telegram",
		GitHub:   "GitHub",
		LinkedIn: "LinkedIn",
		Website:  "Website",

		Present:           "Present",
		Technologies:      "Technologies",
		EmploymentType:    "Employment",
		WorkFormat:        "Work format",
		Relocation:        "Relocation",
		Timezone:          "Time zone",
		WorkAuthorization: "Work authorization",
		Yes:               "Yes",
		No:                "No",

		EmploymentTypes: map[types.EmploymentType]string{
			types.EmploymentFullTime:   "Full-time",
			types.EmploymentPartTime:   "Part-time",
			types.EmploymentContract:   "Contract",
			types.EmploymentInternship: "Internship",
			types.EmploymentFreelance:  "Freelance",
		},
		WorkFormats: map[types.WorkFormat]string{
			types.WorkOffice: "Office",
			types.WorkRemote: "Remote",
			types.WorkHybrid: "Hybrid",
		},
		ActivityTypes: map[types.ActivityType]string{
			types.ActivityOpenSource:   "Open source",
			types.ActivityVolunteering: "Volunteering",
			types.ActivityHackathon:    "Hackathon",
			types.ActivityPublication:  "Publication",
			types.ActivitySpeaking:     "Speaking",
			types.ActivityOther:        "Other",
		},
	},
	LocaleRU: {
		Summary:               "О себе",
		Contacts:              "Контакты",
		Experience:            "Опыт работы",
		Projects:              "Проекты",
		TechSkills:            "Технические навыки",
		SoftSkills:            "Личные качества",
		Education:             "Образование",
		Languages:             "Языки",
		EmploymentPreferences: "Пожелания к работе",
		Certifications:        "Сертификаты",
		Activities:            "Активности",

		Email:    "Email",
		Phone:    "Телефон",
		Location: "Город",
		Telegram: "Telegram",
		GitHub:   "GitHub",
		LinkedIn: "LinkedIn",
		Website:  "Сайт",

		Present:           "по настоящее время",
		Technologies:      "Технологии",
		EmploymentType:    "Занятость",
		WorkFormat:        "Формат работы",
		Relocation:        "Переезд",
		Timezone:          "Часовой пояс",
		WorkAuthorization: "Разрешение на работу",
		Yes:               "Да",
		No:                "Нет",

		EmploymentTypes: map[types.EmploymentType]string{
			types.EmploymentFullTime:   "Полная занятость",
			types.EmploymentPartTime:   "Частичная занятость",
			types.EmploymentContract:   "Контракт",
			types.EmploymentInternship: "Стажировка",
			types.EmploymentFreelance:  "Фриланс",
		},
		WorkFormats: map[types.WorkFormat]string{
			types.WorkOffice: "Офис",
			types.WorkRemote: "Удалённо",
			types.WorkHybrid: "Гибрид",
		},
		ActivityTypes: map[types.ActivityType]string{
			types.ActivityOpenSource:   "Open source",
			types.ActivityVolunteering: "Волонтёрство",
			types.ActivityHackathon:    "Хакатон",
			types.ActivityPublication:  "Публикация",
			types.ActivitySpeaking:     "Выступление",
			types.ActivityOther:        "Другое",
		},
	},
}

// NormalizeLocale maps a requested locale such as "ru-RU" to a supported
// one, falling back to DefaultLocale.
func NormalizeLocale(locale string) string {
	lang := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if _, ok := labelsByLocale[lang]; ok {
		return lang
	}
	return DefaultLocale
}

// LabelsFor returns the labels of locale.
func LabelsFor(locale string) Labels {
	return labelsByLocale[NormalizeLocale(locale)]
}

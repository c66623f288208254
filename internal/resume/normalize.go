package resume

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	embedded "github.com/jonathan/resume-builder/schemas"
	"github.com/sirupsen/logrus"
)

// Report describes what normalization had to repair. Normalization never
// rejects a document; the report is how schema drift becomes visible.
type Report struct {
	// Malformed is set when the input was not a JSON object at all.
	Malformed bool
	// UnknownKeys lists top-level keys that were ignored.
	UnknownKeys []string
	// Repaired lists keys whose input value was replaced or fixed. Nested
	// values are named by path, e.g. "experience[1].isCurrent".
	Repaired []string
	// Migrations lists legacy shapes that were converted.
	Migrations []string
	// SchemaViolations holds findings from the resume JSON schema.
	SchemaViolations []schemas.FieldError
}

// Clean reports whether the input needed no repair at all.
func (r Report) Clean() bool {
	return !r.Malformed && len(r.UnknownKeys) == 0 && len(r.Repaired) == 0 &&
		len(r.Migrations) == 0 && len(r.SchemaViolations) == 0
}

// Log writes the report as a single warning. Clean reports are not logged.
func (r Report) Log(log logrus.FieldLogger, msg string) {
	if r.Clean() {
		return
	}
	fields := logrus.Fields{"malformed": r.Malformed}
	if len(r.UnknownKeys) > 0 {
		fields["unknown_keys"] = r.UnknownKeys
	}
	if len(r.Repaired) > 0 {
		fields["repaired"] = r.Repaired
	}
	if len(r.Migrations) > 0 {
		fields["migrations"] = r.Migrations
	}
	if len(r.SchemaViolations) > 0 {
		violations := make([]string, 0, len(r.SchemaViolations))
		for _, v := range r.SchemaViolations {
			violations = append(violations, v.Field+": "+v.Message)
		}
		fields["schema_violations"] = violations
	}
	log.WithFields(fields).Warn(msg)
}

func (r *Report) repaired(key string) {
	for _, k := range r.Repaired {
		if k == key {
			return
		}
	}
	r.Repaired = append(r.Repaired, key)
}

var knownKeys = map[string]struct{}{
	"lastName": {}, "firstName": {}, "patronymic": {}, "position": {},
	"contacts": {}, "summary": {},
	"experience": {}, "projects": {}, "education": {}, "languages": {},
	"certifications": {}, "activities": {},
	"techSkills": {}, "softSkills": {}, "employmentPreferences": {},
	"templateKey": {}, "accentColor": {}, "includePhoto": {}, "photo": {},
	"sectionsVisibility": {},
}

const legacyFullNameKey = "fullName"

// NormalizeResume returns the canonical form of an in-memory document.
// Every field of a typed document counts as present, so zero values such as
// includePhoto=false or an empty accent color are kept.
func NormalizeResume(doc types.Resume) types.Resume {
	data, err := json.Marshal(doc)
	if err != nil {
		return New()
	}
	out, _ := Normalize(data)
	return out
}

// Normalize builds a canonical document from arbitrary, possibly partial or
// legacy-shaped JSON. Starting from a fresh default, every top-level key the
// input defines overlays the default, with these refinements:
//   - accentColor and includePhoto keep their defaults only when absent;
//     explicit false or "" are respected;
//   - the six lists are used as given when non-empty, otherwise seeded with
//     one fresh entity;
//   - objects (contacts, list entries, tag sets, employment preferences)
//     are decoded field by field;
//   - sectionsVisibility is merged over the all-true default.
//
// A value that fails to decode keeps its default and is reported; its
// siblings are unaffected. A list element that is not an object is dropped.
func Normalize(data []byte) (types.Resume, Report) {
	var report Report
	out := New()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		report.Malformed = true
		return out, report
	}

	if err := schemas.ValidateDocument(embedded.Resume, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			report.SchemaViolations = validationErr.Errors
		}
	}

	for key := range raw {
		if _, ok := knownKeys[key]; !ok && key != legacyFullNameKey {
			report.UnknownKeys = append(report.UnknownKeys, key)
		}
	}
	sort.Strings(report.UnknownKeys)

	decode(raw, "lastName", &out.LastName, &report)
	decode(raw, "firstName", &out.FirstName, &report)
	decode(raw, "patronymic", &out.Patronymic, &report)
	decode(raw, "position", &out.Position, &report)
	migrateFullName(raw, &out, &report)

	decodeObject(raw, "contacts", &out.Contacts, &report)
	decode(raw, "summary", &out.Summary, &report)

	var templateKey types.TemplateKey
	if decode(raw, "templateKey", &templateKey, &report) {
		if templateKey.Valid() {
			out.TemplateKey = templateKey
		} else {
			report.repaired("templateKey")
		}
	}
	decode(raw, "accentColor", &out.AccentColor, &report)
	decode(raw, "includePhoto", &out.IncludePhoto, &report)
	decode(raw, "photo", &out.Photo, &report)

	seen := make(map[string]struct{})
	out.Experience = normalizeList(raw, "experience", out.Experience, experienceID, NewExperience, seen, &report)
	out.Projects = normalizeList(raw, "projects", out.Projects, projectID, NewProject, seen, &report)
	out.Education = normalizeList(raw, "education", out.Education, educationID, NewEducation, seen, &report)
	out.Languages = normalizeList(raw, "languages", out.Languages, languageID, NewLanguage, seen, &report)
	out.Certifications = normalizeList(raw, "certifications", out.Certifications, certificationID, NewCertification, seen, &report)
	out.Activities = normalizeList(raw, "activities", out.Activities, activityID, newDefaultActivity, seen, &report)

	out.TechSkills = normalizeTagSet(raw, "techSkills", &report)
	out.SoftSkills = normalizeTagSet(raw, "softSkills", &report)

	decodeObject(raw, "employmentPreferences", &out.EmploymentPreferences, &report)

	var visibility map[string]json.RawMessage
	if decode(raw, "sectionsVisibility", &visibility, &report) {
		for key, value := range visibility {
			path := "sectionsVisibility." + key
			section := types.SectionKey(key)
			if !section.Valid() {
				report.repaired(path)
				continue
			}
			if isNull(value) {
				continue
			}
			var shown bool
			if err := json.Unmarshal(value, &shown); err != nil {
				report.repaired(path)
				continue
			}
			out.SectionsVisibility[section] = shown
		}
	}

	return out, report
}

// decode unmarshals raw[key] into dst when the key is present and not null.
// A value of the wrong shape leaves dst untouched and is reported.
func decode[T any](raw map[string]json.RawMessage, key string, dst *T, report *Report) bool {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return false
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		report.repaired(key)
		return false
	}
	*dst = v
	return true
}

// decodeObject overlays raw[key] onto dst field by field.
func decodeObject(raw map[string]json.RawMessage, key string, dst any, report *Report) {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return
	}
	decodeFields(value, dst, key, report)
}

// decodeFields unmarshals each member of a JSON object into the field of the
// struct dst points to with the same json name. A member that fails keeps the
// field's current value and is reported as path.name; a slice member keeps
// the elements that decode. It returns false when value is not an object.
func decodeFields(value json.RawMessage, dst any, path string, report *Report) bool {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(value, &members); err != nil || members == nil {
		report.repaired(path)
		return false
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		member, ok := members[name]
		if !ok || isNull(member) {
			continue
		}
		decodeValue(member, v.Field(i), path+"."+name, report)
	}
	return true
}

func decodeValue(value json.RawMessage, dst reflect.Value, path string, report *Report) {
	next := reflect.New(dst.Type())
	if err := json.Unmarshal(value, next.Interface()); err == nil {
		dst.Set(next.Elem())
		return
	}
	if dst.Kind() != reflect.Slice {
		report.repaired(path)
		return
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(value, &elems); err != nil {
		report.repaired(path)
		return
	}
	out := reflect.MakeSlice(dst.Type(), 0, len(elems))
	for i, elem := range elems {
		item := reflect.New(dst.Type().Elem())
		if err := json.Unmarshal(elem, item.Interface()); err != nil {
			report.repaired(fmt.Sprintf("%s[%d]", path, i))
			continue
		}
		out = reflect.Append(out, item.Elem())
	}
	dst.Set(out)
}

func normalizeList[T any](raw map[string]json.RawMessage, key string, fallback []T, idOf func(*T) *string, seed func() T, seen map[string]struct{}, report *Report) []T {
	var elems []json.RawMessage
	if !decode(raw, key, &elems, report) {
		repairIDs(fallback, idOf, seen)
		return fallback
	}

	items := make([]T, 0, len(elems))
	for i, elem := range elems {
		var item T
		if !isNull(elem) && !decodeFields(elem, &item, fmt.Sprintf("%s[%d]", key, i), report) {
			continue
		}
		items = append(items, item)
	}
	items = ensureNonEmpty(items, seed)
	if repairIDs(items, idOf, seen) {
		report.repaired(key)
	}
	return items
}

func normalizeTagSet(raw map[string]json.RawMessage, key string, report *Report) types.TagSet {
	set := NewTagSet()
	value, ok := raw[key]
	if !ok || isNull(value) || !decodeFields(value, &set, key, report) {
		return set
	}
	deduped := DedupeTags(set.Tags)
	if len(deduped) != len(set.Tags) {
		report.repaired(key)
	}
	set.Tags = deduped
	return set
}

// migrateFullName converts the legacy single-field name into the split
// "Last First Patronymic" shape. It only fires when the input carries
// fullName and none of the split keys.
func migrateFullName(raw map[string]json.RawMessage, out *types.Resume, report *Report) {
	if _, ok := raw[legacyFullNameKey]; !ok {
		return
	}
	for _, key := range []string{"lastName", "firstName", "patronymic"} {
		if _, ok := raw[key]; ok {
			return
		}
	}

	var fullName string
	if !decode(raw, legacyFullNameKey, &fullName, report) {
		return
	}
	out.LastName, out.FirstName, out.Patronymic = SplitFullName(fullName)
	report.Migrations = append(report.Migrations, legacyFullNameKey)
}

// SplitFullName splits a "Last First Patronymic" name. Tokens beyond the
// third are joined into the patronymic.
func SplitFullName(fullName string) (last, first, patronymic string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], parts[1], strings.Join(parts[2:], " ")
	}
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

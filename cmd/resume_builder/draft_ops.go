package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

// scalarFields maps `draft set` field names to store setters.
var scalarFields = map[string]func(s *resume.Store, value string) error{
	"lastName":   func(s *resume.Store, v string) error { s.SetLastName(v); return nil },
	"firstName":  func(s *resume.Store, v string) error { s.SetFirstName(v); return nil },
	"patronymic": func(s *resume.Store, v string) error { s.SetPatronymic(v); return nil },
	"position":   func(s *resume.Store, v string) error { s.SetPosition(v); return nil },
	"summary":    func(s *resume.Store, v string) error { s.SetSummary(v); return nil },
	"accentColor": func(s *resume.Store, v string) error {
		s.SetAccentColor(v)
		return nil
	},
	"templateKey": func(s *resume.Store, v string) error {
		key := types.TemplateKey(v)
		if !key.Valid() {
			return fmt.Errorf("unknown template %q", v)
		}
		s.SetTemplateKey(key)
		return nil
	},
	"includePhoto": func(s *resume.Store, v string) error {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("includePhoto must be true or false")
		}
		s.SetIncludePhoto(include)
		return nil
	},
}

func scalarFieldNames() []string {
	return sortedKeys(scalarFields)
}

func setField(s *resume.Store, field, value string) error {
	setter, ok := scalarFields[field]
	if !ok {
		return fmt.Errorf("unknown field %q (known: %s)", field, strings.Join(scalarFieldNames(), ", "))
	}
	return setter(s, value)
}

var contactFieldNames = []string{"email", "phone", "location", "telegram", "github", "linkedin", "website"}

// contactsPatch builds a patch from the flags lookup reports as given.
func contactsPatch(lookup func(name string) (string, bool)) (resume.ContactsPatch, bool) {
	var patch resume.ContactsPatch
	fields := map[string]**string{
		"email":    &patch.Email,
		"phone":    &patch.Phone,
		"location": &patch.Location,
		"telegram": &patch.Telegram,
		"github":   &patch.GitHub,
		"linkedin": &patch.LinkedIn,
		"website":  &patch.Website,
	}

	changed := false
	for _, name := range contactFieldNames {
		if v, ok := lookup(name); ok {
			value := v
			*fields[name] = &value
			changed = true
		}
	}
	return patch, changed
}

// patchInput returns the JSON patch from the argument, a file or stdin, in
// that order.
func patchInput(stdin io.Reader, args []string, file string) ([]byte, error) {
	switch {
	case len(args) > 0:
		return []byte(args[0]), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read patch file: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read patch from stdin: %w", err)
		}
		return data, nil
	}
}

// decodePatch decodes a JSON patch strictly, so a misspelled field is an
// error instead of a silent no-op.
func decodePatch[P any](data []byte) (P, error) {
	var patch P
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return patch, fmt.Errorf("invalid patch: %w", err)
	}
	return patch, nil
}

// listOps binds one entity list of the resume to the store.
type listOps struct {
	add    func(s *resume.Store, kind types.ActivityType) string
	update func(s *resume.Store, id string, patch []byte) error
	remove func(s *resume.Store, id string)
	ids    func(doc types.Resume) []string
}

func patchWith[P any](apply func(*resume.Store, string, P)) func(*resume.Store, string, []byte) error {
	return func(s *resume.Store, id string, data []byte) error {
		patch, err := decodePatch[P](data)
		if err != nil {
			return err
		}
		apply(s, id, patch)
		return nil
	}
}

func idsOf[T any](items []T, idOf func(T) string) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, idOf(item))
	}
	return ids
}

var lists = map[string]listOps{
	"experience": {
		add:    func(s *resume.Store, _ types.ActivityType) string { return s.AddExperience() },
		update: patchWith((*resume.Store).UpdateExperience),
		remove: (*resume.Store).RemoveExperience,
		ids: func(d types.Resume) []string {
			return idsOf(d.Experience, func(e types.Experience) string { return e.ID })
		},
	},
	"projects": {
		add:    func(s *resume.Store, _ types.ActivityType) string { return s.AddProject() },
		update: patchWith((*resume.Store).UpdateProject),
		remove: (*resume.Store).RemoveProject,
		ids: func(d types.Resume) []string {
			return idsOf(d.Projects, func(e types.Project) string { return e.ID })
		},
	},
	"education": {
		add:    func(s *resume.Store, _ types.ActivityType) string { return s.AddEducation() },
		update: patchWith((*resume.Store).UpdateEducation),
		remove: (*resume.Store).RemoveEducation,
		ids: func(d types.Resume) []string {
			return idsOf(d.Education, func(e types.Education) string { return e.ID })
		},
	},
	"languages": {
		add:    func(s *resume.Store, _ types.ActivityType) string { return s.AddLanguage() },
		update: patchWith((*resume.Store).UpdateLanguage),
		remove: (*resume.Store).RemoveLanguage,
		ids: func(d types.Resume) []string {
			return idsOf(d.Languages, func(e types.Language) string { return e.ID })
		},
	},
	"certifications": {
		add:    func(s *resume.Store, _ types.ActivityType) string { return s.AddCertification() },
		update: patchWith((*resume.Store).UpdateCertification),
		remove: (*resume.Store).RemoveCertification,
		ids: func(d types.Resume) []string {
			return idsOf(d.Certifications, func(e types.Certification) string { return e.ID })
		},
	},
	"activities": {
		add:    (*resume.Store).AddActivity,
		update: patchWith((*resume.Store).UpdateActivity),
		remove: (*resume.Store).RemoveActivity,
		ids: func(d types.Resume) []string {
			return idsOf(d.Activities, func(e types.Activity) string { return e.ID })
		},
	},
}

func listNames() []string {
	return sortedKeys(lists)
}

func lookupList(name string) (listOps, error) {
	ops, ok := lists[name]
	if !ok {
		return listOps{}, fmt.Errorf("unknown list %q (known: %s)", name, strings.Join(listNames(), ", "))
	}
	return ops, nil
}

// requireEntry fails when id is not in the list. The store itself ignores
// unknown ids.
func requireEntry(s *resume.Store, list string, ops listOps, id string) error {
	for _, existing := range ops.ids(s.Resume()) {
		if existing == id {
			return nil
		}
	}
	return fmt.Errorf("no %s entry with id %q", list, id)
}

func addEntry(s *resume.Store, list string, kind types.ActivityType) (string, error) {
	ops, err := lookupList(list)
	if err != nil {
		return "", err
	}
	if kind != "" {
		if list != "activities" {
			return "", fmt.Errorf("--type only applies to activities")
		}
		if _, ok := rendering.LabelsFor(rendering.LocaleEN).ActivityTypes[kind]; !ok {
			return "", fmt.Errorf("unknown activity type %q", kind)
		}
	}
	return ops.add(s, kind), nil
}

func updateEntry(s *resume.Store, list, id string, patch []byte) error {
	ops, err := lookupList(list)
	if err != nil {
		return err
	}
	if err := requireEntry(s, list, ops, id); err != nil {
		return err
	}
	return ops.update(s, id, patch)
}

func removeEntry(s *resume.Store, list, id string) error {
	ops, err := lookupList(list)
	if err != nil {
		return err
	}
	if err := requireEntry(s, list, ops, id); err != nil {
		return err
	}
	ops.remove(s, id)
	return nil
}

// tagSetOps binds one of the two skill tag sets.
type tagSetOps struct {
	add    func(s *resume.Store, tag string)
	remove func(s *resume.Store, tag string)
	note   func(s *resume.Store, note string)
}

func parseTagSet(name string) (tagSetOps, error) {
	switch strings.ToLower(name) {
	case "tech", "techskills":
		return tagSetOps{
			add:    (*resume.Store).AddTechSkillTag,
			remove: (*resume.Store).RemoveTechSkillTag,
			note:   (*resume.Store).SetTechSkillsNote,
		}, nil
	case "soft", "softskills":
		return tagSetOps{
			add:    (*resume.Store).AddSoftSkillTag,
			remove: (*resume.Store).RemoveSoftSkillTag,
			note:   (*resume.Store).SetSoftSkillsNote,
		}, nil
	default:
		return tagSetOps{}, fmt.Errorf("unknown tag set %q (use tech or soft)", name)
	}
}

func sectionNames() []string {
	names := make([]string, 0, len(types.SectionKeys))
	for _, key := range types.SectionKeys {
		names = append(names, string(key))
	}
	return names
}

func setSection(s *resume.Store, name, action string) error {
	key := types.SectionKey(name)
	if !key.Valid() {
		return fmt.Errorf("unknown section %q (known: %s)", name, strings.Join(sectionNames(), ", "))
	}

	switch strings.ToLower(action) {
	case "show", "on":
		s.SetSectionVisible(key, true)
	case "hide", "off":
		s.SetSectionVisible(key, false)
	case "toggle":
		s.ToggleSection(key)
	default:
		return fmt.Errorf("unknown action %q (use show, hide or toggle)", action)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package resume

import "github.com/jonathan/resume-builder/internal/types"

func experienceID(e *types.Experience) *string       { return &e.ID }
func projectID(e *types.Project) *string             { return &e.ID }
func educationID(e *types.Education) *string         { return &e.ID }
func languageID(e *types.Language) *string           { return &e.ID }
func certificationID(e *types.Certification) *string { return &e.ID }
func activityID(e *types.Activity) *string           { return &e.ID }

// updateByID applies fn to the entity with the given id. It reports whether
// an entity was found.
func updateByID[T any](items []T, id string, idOf func(*T) *string, fn func(*T)) bool {
	for i := range items {
		if *idOf(&items[i]) == id {
			fn(&items[i])
			return true
		}
	}
	return false
}

// removeByID drops the entity with the given id. A list emptied by the
// removal is re-seeded with exactly one fresh entity.
func removeByID[T any](items []T, id string, idOf func(*T) *string, seed func() T) ([]T, bool) {
	kept := make([]T, 0, len(items))
	for i := range items {
		if *idOf(&items[i]) != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return items, false
	}
	if len(kept) == 0 {
		kept = append(kept, seed())
	}
	return kept, true
}

// ensureNonEmpty returns items, or a single seeded entity when items is empty.
func ensureNonEmpty[T any](items []T, seed func() T) []T {
	if len(items) == 0 {
		return []T{seed()}
	}
	return items
}

// repairIDs assigns a fresh id to entities with an empty id or an id already
// seen elsewhere in the document. It reports whether anything changed.
func repairIDs[T any](items []T, idOf func(*T) *string, seen map[string]struct{}) bool {
	repaired := false
	for i := range items {
		id := idOf(&items[i])
		if _, dup := seen[*id]; *id == "" || dup {
			*id = NewID()
			repaired = true
		}
		seen[*id] = struct{}{}
	}
	return repaired
}

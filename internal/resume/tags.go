package resume

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// NormalizeTag returns the comparison form of a tag: trimmed, inner
// whitespace runs collapsed to one space, lower-cased.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.Join(strings.Fields(tag), " "))
}

// DedupeTags trims every tag, drops empties and keeps the first of any
// normalized-equal tags, preserving order.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := NormalizeTag(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}

	return out
}

// HasTag reports whether set already holds a tag normalized-equal to tag.
func HasTag(set types.TagSet, tag string) bool {
	key := NormalizeTag(tag)
	for _, existing := range set.Tags {
		if NormalizeTag(existing) == key {
			return true
		}
	}
	return false
}

func addTag(set *types.TagSet, tag string) bool {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" || HasTag(*set, trimmed) {
		return false
	}
	set.Tags = append(set.Tags, trimmed)
	return true
}

// removeTag drops every entry exactly equal to tag. No normalization.
func removeTag(set *types.TagSet, tag string) bool {
	kept := make([]string, 0, len(set.Tags))
	for _, existing := range set.Tags {
		if existing != tag {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(set.Tags) {
		return false
	}
	set.Tags = kept
	return true
}

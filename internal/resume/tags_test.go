package resume

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func TestNormalizeTag(t *testing.T) {
	tests := map[string]string{
		"React":              "react",
		"  react  ":          "react",
		"Machine   Learning": "machine learning",
		"\tC++\n":            "c++",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTag(in), "NormalizeTag(%q)", in)
	}
}

func TestDedupeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"first seen wins", []string{"B", "  a ", "A", "b"}, []string{"B", "a"}},
		{"drops blanks", []string{"", "  ", "Go"}, []string{"Go"}},
		{"inner whitespace", []string{"Machine Learning", "machine  learning"}, []string{"Machine Learning"}},
		{"keeps inner spacing of kept tag", []string{" Machine  Learning "}, []string{"Machine  Learning"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeTags(tt.in))
		})
	}
}

func TestHasTag(t *testing.T) {
	set := types.TagSet{Tags: []string{"React", "Go"}}
	assert.True(t, HasTag(set, " react"))
	assert.True(t, HasTag(set, "GO"))
	assert.False(t, HasTag(set, "Rust"))
}

func TestTagInvariantHoldsAfterAnySequence(t *testing.T) {
	s := NewStore(nil)
	s.AddTechSkillTag("Go")
	s.SetTechSkillsTags([]string{"go", "Rust", "GO "})
	s.AddTechSkillTag("rust")
	s.AddTechSkillTag("Zig")
	s.RemoveTechSkillTag("Rust")
	s.AddTechSkillTag(" rust ")

	tags := s.Resume().TechSkills.Tags
	seen := map[string]bool{}
	for _, tag := range tags {
		key := NormalizeTag(tag)
		assert.NotEmpty(t, key)
		assert.False(t, seen[key], "duplicate tag %q in %v", tag, tags)
		seen[key] = true
	}
	assert.Equal(t, []string{"go", "Zig", "rust"}, tags)
}

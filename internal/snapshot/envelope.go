// Package snapshot keeps a local copy of the draft resume so an unsaved
// document survives restarts. Snapshots are versioned envelopes and never
// carry the photo.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftKey is the storage key of the draft snapshot.
const DraftKey = "resume-draft"

// CurrentVersion is the envelope version written by Encode.
const CurrentVersion = 1

// Envelope is the stored form of a snapshot.
type Envelope struct {
	Version int             `json:"version"`
	Resume  json.RawMessage `json:"resume"`
	IsDraft bool            `json:"isDraft"`
}

// Encode serializes doc into a current-version envelope. The photo is
// dropped.
func Encode(doc types.Resume, isDraft bool) ([]byte, error) {
	stripped := doc.Clone()
	stripped.Photo = ""

	body, err := json.Marshal(stripped)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	return json.Marshal(Envelope{
		Version: CurrentVersion,
		Resume:  body,
		IsDraft: isDraft,
	})
}

// Decode parses a stored snapshot, migrates it to the current version and
// returns the normalized resume with its draft flag.
func Decode(data []byte) (types.Resume, bool, error) {
	doc, isDraft, _, err := decode(data)
	return doc, isDraft, err
}

func decode(data []byte) (types.Resume, bool, resume.Report, error) {
	env, err := Migrate(data)
	if err != nil {
		return types.Resume{}, false, resume.Report{}, err
	}

	doc, report := resume.Normalize(env.Resume)
	if report.Malformed {
		return types.Resume{}, false, report, &DecodeError{Message: "resume is not a JSON object"}
	}
	return doc, env.IsDraft, report, nil
}

// migrations maps a version to the step that lifts it to the next one.
var migrations = map[int]func(Envelope) Envelope{
	0: migrateV0,
}

// Migrate parses data and upgrades it step by step to CurrentVersion. A
// payload without an envelope is a version 0 snapshot: the resume object
// itself.
func Migrate(data []byte) (Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope{}, &DecodeError{Message: "snapshot is not valid JSON", Cause: err}
	}
	if raw == nil {
		return Envelope{}, &DecodeError{Message: "snapshot is null"}
	}

	env, err := parse(data, raw)
	if err != nil {
		return Envelope{}, err
	}
	if env.Version > CurrentVersion || env.Version < 0 {
		return Envelope{}, &VersionError{Version: env.Version}
	}

	for env.Version < CurrentVersion {
		step, ok := migrations[env.Version]
		if !ok {
			return Envelope{}, &VersionError{Version: env.Version}
		}
		env = step(env)
	}
	return env, nil
}

// parse reads the envelope fields. Only drafts are ever written, so a
// snapshot without an isDraft flag is a draft in every version.
func parse(data []byte, raw map[string]json.RawMessage) (Envelope, error) {
	body, wrapped := raw["resume"]
	if !wrapped {
		return Envelope{Version: 0, Resume: data, IsDraft: true}, nil
	}

	env := Envelope{Resume: body, IsDraft: true}
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &env.Version); err != nil {
			return Envelope{}, &DecodeError{Message: "version is not an integer", Cause: err}
		}
	}
	if v, ok := raw["isDraft"]; ok && !isNullJSON(v) {
		if err := json.Unmarshal(v, &env.IsDraft); err != nil {
			return Envelope{}, &DecodeError{Message: "isDraft is not a boolean", Cause: err}
		}
	}
	return env, nil
}

// migrateV0 lifts a version 0 snapshot, which had no draft flag, to
// version 1.
func migrateV0(env Envelope) Envelope {
	env.Version = 1
	return env
}

func isNullJSON(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

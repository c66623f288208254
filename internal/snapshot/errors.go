package snapshot

import "fmt"

// DecodeError is returned when a stored snapshot is not valid JSON or does
// not have the envelope shape.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// VersionError is returned for snapshots written by a newer schema version
// than this build understands.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot version %d (current %d)", e.Version, CurrentVersion)
}

// StorageError wraps a failure of a storage backend.
type StorageError struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot storage %s %q: %s: %v", e.Op, e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot storage %s %q: %s", e.Op, e.Key, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

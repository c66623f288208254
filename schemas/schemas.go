// Package schemas embeds the JSON Schema documents describing persisted resume data.
package schemas

import "embed"

// Schema file names.
const (
	Resume   = "resume.schema.json"
	Snapshot = "snapshot.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw contents of the named schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

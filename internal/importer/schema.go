package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for an import file.
type ImportSchema struct {
	Tasks []TaskImport `json:"tasks"`
	Todos []TodoImport `json:"todos,omitempty"`
}

// TaskImport defines a task. Ref names it within the file only.
type TaskImport struct {
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

// TodoImport schedules the task named by TaskRef. Times are RFC 3339.
type TodoImport struct {
	TaskRef     string             `json:"task_ref"`
	Start       string             `json:"start"`
	End         string             `json:"end"`
	Checkpoints []CheckpointImport `json:"checkpoints,omitempty"`
}

// CheckpointImport defines one done status.
type CheckpointImport struct {
	At   string `json:"at"`
	Done bool   `json:"done,omitempty"`
}

// LoadImportSchema reads an import file, checks it against the document
// schema and parses it.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema checks data against the document schema and parses it.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

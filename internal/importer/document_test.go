package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
  "tasks": [{"ref": "gym", "name": "Go to the gym"}],
  "todos": [{
    "task_ref": "gym",
    "start": "2022-01-01T08:00:00Z",
    "end": "2022-01-01T18:00:00Z",
    "checkpoints": [{"at": "2022-01-01T09:00:00Z", "done": true}]
  }]
}`

func TestValidateDocument_Valid(t *testing.T) {
	require.NoError(t, ValidateDocument([]byte(validDocument)))
}

func TestValidateDocument_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"missing tasks", `{"todos": []}`, ""},
		{"task without name", `{"tasks": [{"ref": "a"}]}`, "tasks[0]"},
		{"empty ref", `{"tasks": [{"ref": "", "name": "A"}]}`, "tasks[0].ref"},
		{"unknown field", `{"tasks": [], "projects": []}`, ""},
		{"bad timestamp format", `{"tasks": [], "todos": [{"task_ref": "a", "start": "yesterday", "end": "2022-01-01T18:00:00Z"}]}`, "todos[0].start"},
		{"done not bool", `{"tasks": [], "todos": [{"task_ref": "a", "start": "2022-01-01T08:00:00Z", "end": "2022-01-01T18:00:00Z", "checkpoints": [{"at": "2022-01-01T09:00:00Z", "done": "yes"}]}]}`, "todos[0].checkpoints[0].done"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tc.doc))
			require.Error(t, err)

			var docErrs DocumentErrors
			require.ErrorAs(t, err, &docErrs)
			require.NotEmpty(t, docErrs)
			var paths []string
			for _, d := range docErrs {
				paths = append(paths, d.Path)
			}
			assert.Contains(t, paths, tc.wantPath)
		})
	}
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument([]byte(`{"tasks": [`))
	require.Error(t, err)
	var docErrs DocumentErrors
	assert.False(t, errors.As(err, &docErrs))
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestLoadImportSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	require.Len(t, schema.Tasks, 1)
	assert.Equal(t, "gym", schema.Tasks[0].Ref)
	require.Len(t, schema.Todos, 1)
	require.Len(t, schema.Todos[0].Checkpoints, 1)
	assert.True(t, schema.Todos[0].Checkpoints[0].Done)
}

func TestLoadImportSchema_MissingFile(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJSONPointerToPath(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"/tasks":                    "tasks",
		"/todos/0/start":            "todos[0].start",
		"/todos/2/checkpoints/1/at": "todos[2].checkpoints[1].at",
	}
	for in, want := range cases {
		assert.Equal(t, want, jsonPointerToPath(in), in)
	}
}

package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "https://cadence.local/import.schema.json"

//go:embed import.schema.json
var documentSchemaJSON []byte

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

// DocumentError is a structural problem found in an import file.
type DocumentError struct {
	Path    string
	Message string
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// DocumentErrors lists every structural problem found in one file.
type DocumentErrors []*DocumentError

func (e DocumentErrors) Error() string {
	msg := fmt.Sprintf("import file does not match schema (%d errors):", len(e))
	for _, d := range e {
		msg += "\n  - " + d.Error()
	}
	return msg
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(documentSchemaURL, bytes.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("loading import schema: %w", err)
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile(documentSchemaURL)
		if documentSchemaErr != nil {
			documentSchemaErr = fmt.Errorf("compile schema: %w", documentSchemaErr)
		}
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocument checks raw JSON against the import document schema. It
// returns DocumentErrors when the document is well-formed JSON of the wrong
// shape.
func ValidateDocument(data []byte) error {
	schema, err := compiledDocumentSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var out DocumentErrors
		collectDocumentErrors(ve, &out)
		if len(out) == 0 {
			out = append(out, &DocumentError{Message: ve.Message})
		}
		return out
	}
	return nil
}

// collectDocumentErrors gathers the leaf causes of a validation failure.
func collectDocumentErrors(err *jsonschema.ValidationError, out *DocumentErrors) {
	if len(err.Causes) == 0 {
		*out = append(*out, &DocumentError{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectDocumentErrors(cause, out)
	}
}

// jsonPointerToPath turns "/todos/0/start" into "todos[0].start".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Package schemas validates generated JSON documents against the embedded stage schemas.
package schemas

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/resume-as-code/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Schema names, one per structured generation stage.
const (
	JobAnalysis   = "job_analysis"
	DraftContent  = "draft_content"
	QualityReview = "quality_review"
	CoverLetter   = "cover_letter"
	CVExperience  = "cv_experience"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Schema is a compiled stage schema.
type Schema struct {
	Name     string
	Raw      string
	compiled *gojsonschema.Schema
}

// Validate checks doc against the schema.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		// the document itself failed to parse
		return &ValidationError{
			Schema: s.Name,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	return toValidationError(s.Name, result)
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*Schema)
)

// Load returns the embedded schema called name, compiling it on first use.
func Load(name string) (*Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[name]; ok {
		return s, nil
	}

	path := name + ".schema.json"
	raw, err := fs.ReadFile(schemafiles.FS, path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema not found", Cause: err}
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema failed to compile", Cause: err}
	}

	s := &Schema{Name: name, Raw: string(raw), compiled: compiled}
	cache[name] = s
	return s, nil
}

// MustLoad is Load for schemas known to be embedded. It panics on error.
func MustLoad(name string) *Schema {
	s, err := Load(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the names of all embedded schemas.
func List() []string {
	matches, _ := fs.Glob(schemafiles.FS, "*.schema.json")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".schema.json"))
	}
	return names
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError("", result)
}

func toValidationError(name string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

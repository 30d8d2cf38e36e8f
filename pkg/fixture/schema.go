package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "fixture-schema.json"

// Schema is a compiled JSON Schema (draft 2020-12) fixtures can be checked
// against.
type Schema struct {
	source   string
	compiled *jsonschema.Schema
}

// CompileSchema reads and compiles the JSON Schema file at path.
func CompileSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := NewSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.source = path
	return s, nil
}

// NewSchema compiles a JSON Schema document.
func NewSchema(raw []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{source: schemaResource, compiled: compiled}, nil
}

// Source returns the file the schema was compiled from.
func (s *Schema) Source() string {
	return s.source
}

// Validate checks v against the schema. Values are round-tripped through
// JSON first so YAML-decoded data validates with the same types.
func (s *Schema) Validate(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := s.compiled.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

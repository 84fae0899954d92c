package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for stage catalog files
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError is one problem found in a catalog file
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
	Stages int
}

func (r *ValidationResult) fail(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ValidateCatalog checks catalog content against the JSON Schema, then
// builds a snapshot from it to catch semantic errors (duplicates, empty enums).
func ValidateCatalog(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.fail("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.fail("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			result.fail("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = m
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	schemaResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if !schemaResult.Valid() {
		for _, e := range schemaResult.Errors() {
			result.fail(e.Field(), e.Description())
		}
		return result, nil
	}

	kinds, err := DecodeCatalog(path, content)
	if err != nil {
		result.fail("catalog", err.Error())
		return result, nil
	}
	snap, err := NewSnapshot(kinds)
	if err != nil {
		result.fail(semanticField(err), err.Error())
		return result, nil
	}
	result.Stages = snap.Len()
	return result, nil
}

func semanticField(err error) string {
	var verr *derrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	var dup *derrors.AlreadyExistsError
	if errors.As(err, &dup) {
		return "stages/" + dup.Resource
	}
	return "catalog"
}

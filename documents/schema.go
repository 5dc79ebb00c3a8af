package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchemaInvalid reports a metadata schema that cannot be compiled.
var ErrSchemaInvalid = errors.New("metadata schema invalid")

// SchemaIssue captures a single metadata validation failure.
type SchemaIssue struct {
	Location string
	Message  string
}

// MetadataValidator checks parsed front-matter fields against a JSON schema
// before a document is accepted. A nil validator accepts everything.
type MetadataValidator struct {
	compiled *jsonschema.Schema
}

// NewMetadataValidator compiles schema into a reusable validator. An empty
// schema yields a nil validator, which accepts any metadata.
func NewMetadataValidator(schema map[string]any) (*MetadataValidator, error) {
	if len(schema) == 0 {
		return nil, nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &MetadataValidator{compiled: compiled}, nil
}

// Validate checks metadata against the compiled schema and returns the
// individual failures, if any.
func (v *MetadataValidator) Validate(metadata map[string]any) []SchemaIssue {
	if v == nil || v.compiled == nil {
		return nil
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	normalized, err := normalizePayload(metadata)
	if err != nil {
		return []SchemaIssue{{Message: err.Error()}}
	}
	if err := v.compiled.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return collectSchemaIssues(validationErr)
		}
		return []SchemaIssue{{Message: err.Error()}}
	}
	return nil
}

// normalizePayload round-trips metadata through JSON so the validator sees
// json.Number-free plain values regardless of how YAML decoded them.
func normalizePayload(metadata map[string]any) (any, error) {
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectSchemaIssues(err *jsonschema.ValidationError) []SchemaIssue {
	if err == nil {
		return nil
	}
	issues := []SchemaIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, SchemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

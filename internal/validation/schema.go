package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf16"

	"github.com/google/jsonschema-go/jsonschema"
)

// ValidationError represents a parameter validation error
type ValidationError struct {
	Type       string                 `json:"type"`
	Message    string                 `json:"message"`
	Violations []string               `json:"violations,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(violations []string) *ValidationError {
	return &ValidationError{
		Type:       "ValidationError",
		Message:    "Validation error: " + strings.Join(violations, ", "),
		Violations: violations,
	}
}

// Schema is a resolved tool input schema together with the messages reported
// when one of its property constraints is violated. Message keys have the form
// "<property>.<keyword>", e.g. "prompt.minLength".
type Schema struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	messages map[string]string
}

// NewSchema resolves schema for validation
func NewSchema(schema *jsonschema.Schema, messages map[string]string) (*Schema, error) {
	if schema == nil {
		return nil, &ValidationError{Type: "SchemaError", Message: "Schema is nil"}
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, &ValidationError{
			Type:    "SchemaError",
			Message: "Failed to resolve JSON schema",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}
	return &Schema{schema: schema, resolved: resolved, messages: messages}, nil
}

// MustSchema is like NewSchema but panics if the schema cannot be resolved
func MustSchema(schema *jsonschema.Schema, messages map[string]string) *Schema {
	s, err := NewSchema(schema, messages)
	if err != nil {
		panic("invalid tool schema: " + FormatValidationError(err))
	}
	return s
}

// JSONSchema returns the underlying schema, suitable for advertising as a tool's input schema
func (s *Schema) JSONSchema() *jsonschema.Schema {
	return s.schema
}

// Validate checks raw tool arguments against schema and decodes them into T.
// Every violation is collected; the returned *ValidationError joins them all.
func Validate[T any](schema *Schema, raw json.RawMessage) (T, error) {
	var out T

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = json.RawMessage("{}")
	}

	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return out, newValidationError([]string{fmt.Sprintf("Invalid JSON arguments: %v", err)})
	}

	params, ok := instance.(map[string]interface{})
	if !ok {
		return out, newValidationError([]string{fmt.Sprintf("Expected object, received %s", kindOf(instance))})
	}

	if err := schema.ValidateParams(params); err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newValidationError([]string{fmt.Sprintf("Invalid arguments: %v", err)})
	}
	return out, nil
}

// ValidateParams validates already-decoded parameters against the schema
func (s *Schema) ValidateParams(params map[string]interface{}) error {
	var violations []string

	for _, name := range s.schema.Required {
		if _, ok := params[name]; !ok {
			violations = append(violations, s.message(name, "required", name+": Required"))
		}
	}

	for _, name := range s.propertyNames() {
		value, ok := params[name]
		if !ok {
			continue
		}
		violations = append(violations, s.checkProperty(name, s.schema.Properties[name], value)...)
	}

	if len(violations) > 0 {
		return newValidationError(violations)
	}

	// Catch anything the per-property checks do not model.
	if err := s.resolved.Validate(params); err != nil {
		return newValidationError([]string{err.Error()})
	}
	return nil
}

func (s *Schema) checkProperty(name string, prop *jsonschema.Schema, value interface{}) []string {
	if prop == nil {
		return nil
	}

	kind := kindOf(value)
	if prop.Type != "" && prop.Type != kind && !(prop.Type == "integer" && kind == "number") {
		return []string{s.message(name, "type", fmt.Sprintf("%s: Expected %s, received %s", name, prop.Type, kind))}
	}

	str, isString := value.(string)
	if !isString {
		return nil
	}

	var violations []string
	n := lengthOf(str)
	if prop.MinLength != nil && n < *prop.MinLength {
		violations = append(violations, s.message(name, "minLength",
			fmt.Sprintf("%s must contain at least %d character(s)", name, *prop.MinLength)))
	}
	if prop.MaxLength != nil && n > *prop.MaxLength {
		violations = append(violations, s.message(name, "maxLength",
			fmt.Sprintf("%s must contain at most %d character(s)", name, *prop.MaxLength)))
	}
	if prop.Format == "uri" && !IsValidURL(str) {
		violations = append(violations, s.message(name, "format", "Invalid url"))
	}
	return violations
}

// propertyNames returns the schema's properties in declaration order
func (s *Schema) propertyNames() []string {
	names := make([]string, 0, len(s.schema.Properties))
	seen := make(map[string]bool, len(s.schema.Properties))
	for _, name := range s.schema.PropertyOrder {
		if _, ok := s.schema.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for name := range s.schema.Properties {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

// lengthOf counts UTF-16 code units, so characters outside the BMP count twice
func lengthOf(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func (s *Schema) message(property, keyword, fallback string) string {
	if msg, ok := s.messages[property+"."+keyword]; ok {
		return msg
	}
	return fallback
}

// IsValidURL reports whether raw parses as an absolute URL: a scheme plus
// either a host (https://example.com/a.png) or an opaque part (data:image/png;base64,...)
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// FormatValidationError formats a validation error for display
func FormatValidationError(err error) string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	if detail, ok := verr.Details["error"].(string); ok {
		return verr.Message + ": " + detail
	}
	return verr.Message
}

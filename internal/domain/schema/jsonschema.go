package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchema describes the external form of s as a draft 2020-12 JSON Schema.
// A strict schema rejects undeclared properties.
func (s *Schema) JSONSchema(strict bool) map[string]any {
	doc := s.objectSchema(strict)
	doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	doc["title"] = s.name
	return doc
}

func (s *Schema) objectSchema(strict bool) map[string]any {
	props := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		props[f.External] = nullable(f.jsonSchema(strict))
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": !strict,
	}
}

func (f *Field) jsonSchema(strict bool) map[string]any {
	var out map[string]any
	switch f.Kind {
	case KindEntity:
		out = f.Nested.objectSchema(strict)
	case KindEntityList:
		items := f.Nested.objectSchema(strict)
		if f.IsDeferred() {
			// Deferred lists also take scalars and tuples.
			items = map[string]any{}
		}
		out = map[string]any{"type": "array", "items": items}
	case KindUnion:
		var alts []any
		for _, vr := range f.Union.variants {
			if vr.Schema != nil {
				alts = append(alts, vr.Schema.objectSchema(strict))
			} else {
				alts = append(alts, map[string]any{"not": map[string]any{"type": "object"}})
			}
		}
		out = map[string]any{"anyOf": alts}
	case KindList:
		out = map[string]any{"type": "array", "items": nullable(f.Elem.jsonSchema(strict))}
	default:
		out = scalarSchema(f)
	}
	if f.Doc != "" {
		out["description"] = f.Doc
	}
	if f.LibraryDefault != nil {
		out["default"] = f.LibraryDefault
	}
	return out
}

func scalarSchema(f *Field) map[string]any {
	switch f.Type {
	case "number", "integer":
		out := map[string]any{"type": f.Type}
		if f.Minimum != nil {
			out["minimum"] = *f.Minimum
		}
		if f.Maximum != nil {
			out["maximum"] = *f.Maximum
		}
		return out
	case "string", "callback":
		return map[string]any{"type": "string"}
	case "boolean":
		return map[string]any{"type": "boolean"}
	case "enum":
		values := make([]any, len(f.Enum))
		for i, v := range f.Enum {
			values[i] = v
		}
		return map[string]any{"enum": values}
	case "date":
		return map[string]any{"type": "string", "format": "date"}
	case "datetime", "xvalue":
		return map[string]any{"type": []any{"number", "string"}}
	case "axisref":
		return map[string]any{"type": []any{"integer", "string"}}
	}
	return map[string]any{}
}

// nullable allows null alongside the declared type; null always means "disable".
func nullable(s map[string]any) map[string]any {
	switch t := s["type"].(type) {
	case string:
		s["type"] = []any{t, "null"}
		return s
	case []any:
		s["type"] = append(t, "null")
		return s
	}
	if len(s) == 0 {
		return s
	}
	return map[string]any{"anyOf": []any{s, map[string]any{"type": "null"}}}
}

// Validator checks raw external documents against a compiled schema.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles the JSON Schema of s.
func (s *Schema) Compile(strict bool) (*Validator, error) {
	b, err := json.Marshal(s.JSONSchema(strict))
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema %s: %w", s.name, err)
	}

	url := s.name + ".schema.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", s.name, err)
	}
	return &Validator{name: s.name, schema: compiled}, nil
}

// Violation is one JSON Schema failure.
type Violation struct {
	Location string
	Message  string
}

// Violations validates doc and lists every failure. A nil result means the
// document is valid.
func (v *Validator) Violations(doc any) ([]Violation, error) {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	var out []Violation
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		// Leaf causes carry the specific messages.
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			out = append(out, Violation{Location: location, Message: e.Message})
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(ve)
	if len(out) == 0 {
		out = append(out, Violation{Location: "(root)", Message: ve.Message})
	}
	return out, nil
}

// ValidateDocument validates doc and folds every failure into one error.
func (v *Validator) ValidateDocument(doc any) error {
	violations, err := v.Violations(doc)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}
	messages := make([]string, len(violations))
	for i, vi := range violations {
		messages[i] = fmt.Sprintf("%s: %s", vi.Location, vi.Message)
	}
	return fmt.Errorf("%s validation failed:\n    - %s", v.name, strings.Join(messages, "\n    - "))
}

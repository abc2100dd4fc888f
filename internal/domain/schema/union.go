package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Variant is one alternative of a union. Record variants claim maps by key;
// a scalar variant accepts whatever its Scalar decoder accepts.
type Variant struct {
	Name         string
	Schema       *Schema
	InternalKeys []string // snake_case keys that identify the keyword form
	ExternalKeys []string // camelCase keys that identify the external form
	Scalar       func(v any) (any, error)
}

// Choice is a resolved union value.
type Choice struct {
	Variant string
	Value   any
}

// Record returns the choice's record, or nil for scalar variants.
func (c Choice) Record() *Record {
	r, _ := c.Value.(*Record)
	return r
}

// Union is a tagged variant type with a fixed decoder chain.
type Union struct {
	name     string
	variants []Variant
}

// NewUnion declares a union. Variants are tried in the order given within each
// stage of the decoder chain.
func NewUnion(name string, variants ...Variant) *Union {
	return &Union{name: name, variants: variants}
}

// Name returns the union name.
func (u *Union) Name() string { return u.name }

// Variants returns the union's variants.
func (u *Union) Variants() []Variant { return slices.Clone(u.variants) }

// Resolve decides which variant v belongs to and decodes it. The chain is:
// an existing Choice or record, a map keyed in the keyword form, a map keyed in
// the external form, a serialized JSON object, and finally the scalar variants.
func (u *Union) Resolve(v any, opts ...DecodeOption) (Choice, error) {
	d := newDecoder(opts)
	d.external = true
	return u.resolve("", v, d)
}

func (u *Union) resolve(field string, v any, d *decoder) (Choice, error) {
	switch x := v.(type) {
	case Choice:
		if _, ok := u.variant(x.Variant); ok {
			return x, nil
		}
	case *Record:
		for _, vr := range u.variants {
			if vr.Schema != nil && x.schema.Extends(vr.Schema) {
				return Choice{Variant: vr.Name, Value: x}, nil
			}
		}
	case map[string]any:
		return u.resolveMap(field, x, d)
	case string:
		if looksLikeJSONObject(x) {
			var m map[string]any
			if err := json.UnmarshalFromString(x, &m); err == nil {
				return u.resolveMap(field, m, d)
			}
		}
	}

	for _, vr := range u.variants {
		if vr.Scalar == nil {
			continue
		}
		if out, err := vr.Scalar(v); err == nil {
			return Choice{Variant: vr.Name, Value: out}, nil
		}
	}
	return Choice{}, NewUnresolvedUnionTypeError(field, u.name, v)
}

func (u *Union) resolveMap(field string, m map[string]any, d *decoder) (Choice, error) {
	for _, vr := range u.variants {
		if vr.Schema != nil && hasAny(m, vr.InternalKeys) {
			rec, err := vr.Schema.fromFields(m, d)
			if err != nil {
				return Choice{}, fmt.Errorf("decoding %s as %s: %w", u.name, vr.Name, err)
			}
			return Choice{Variant: vr.Name, Value: rec}, nil
		}
	}
	for _, vr := range u.variants {
		if vr.Schema != nil && hasAny(m, vr.ExternalKeys) {
			rec, err := vr.Schema.fromExternal(m, d)
			if err != nil {
				return Choice{}, fmt.Errorf("decoding %s as %s: %w", u.name, vr.Name, err)
			}
			return Choice{Variant: vr.Name, Value: rec}, nil
		}
	}
	return Choice{}, NewUnresolvedUnionTypeError(field, u.name, m)
}

func (u *Union) variant(name string) (Variant, bool) {
	for _, vr := range u.variants {
		if vr.Name == name {
			return vr, true
		}
	}
	return Variant{}, false
}

func hasAny(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// String describes the union and its variants.
func (u *Union) String() string {
	names := make([]string, len(u.variants))
	for i, vr := range u.variants {
		names[i] = vr.Name
	}
	return fmt.Sprintf("%s(%s)", u.name, strings.Join(names, " | "))
}

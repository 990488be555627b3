// Package schema loads the watched program's published instruction schema
// (its Anchor IDL) and resolves instruction discriminators against it.
package schema

import (
	"encoding/json"
	"fmt"
)

// IDL is the subset of an Anchor IDL needed for instruction decoding.
type IDL struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []IDLInstruction `json:"instructions"`
}

// IDLInstruction describes one instruction variant.
type IDLInstruction struct {
	Name string     `json:"name"`
	Args []IDLField `json:"args"`
}

// IDLField is a named, typed instruction argument.
type IDLField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// FieldType is either a primitive type name or an option wrapper.
// Composite types the decoder cannot handle keep their raw form and fail
// decoding explicitly.
type FieldType struct {
	// Primitive holds names like "u64", "i64", "bool", "publicKey", "string".
	Primitive string
	// Option is set for option<T> fields.
	Option *FieldType
}

// UnmarshalJSON accepts both `"u64"` and `{"option":"u64"}` forms.
func (t *FieldType) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Primitive)
	}

	var wrap struct {
		Option *FieldType `json:"option"`
	}
	if err := json.Unmarshal(data, &wrap); err != nil {
		return fmt.Errorf("parse field type: %w", err)
	}
	if wrap.Option == nil {
		return fmt.Errorf("unsupported field type: %s", string(data))
	}
	t.Option = wrap.Option
	return nil
}

// String renders the type for diagnostics.
func (t FieldType) String() string {
	if t.Option != nil {
		return "option<" + t.Option.String() + ">"
	}
	return t.Primitive
}

package schema

import (
	"encoding/json"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// JSONSchema holds a JSON-encoded schema document. It can be unmarshalled
// from both JSON and YAML sources; a YAML node is decoded to a native value
// and re-encoded as JSON bytes.
type JSONSchema json.RawMessage

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewJSONSchema creates a JSONSchema from raw JSON bytes.
func NewJSONSchema(data json.RawMessage) JSONSchema {
	return JSONSchema(data)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Bytes returns the underlying JSON bytes.
func (s JSONSchema) Bytes() []byte {
	return []byte(s)
}

// Map decodes the schema document into a map.
func (s JSONSchema) Map() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(s.Bytes(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (s JSONSchema) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (s *JSONSchema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// YAML UNMARSHALLING

func (s *JSONSchema) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*s = data
	return nil
}

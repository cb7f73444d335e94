package schema

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDefinition describes one tool the model may call. It serializes
// to the chat API's function-tool envelope:
//
//	{"type":"function","function":{"name":...,"description":...,"parameters":{...}}}
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema // nil means the tool takes no arguments
}

// jsonToolDefinition is the wire form of a ToolDefinition.
type jsonToolDefinition struct {
	Type     string           `json:"type"`
	Function jsonToolFunction `json:"function"`
}

type jsonToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (t ToolDefinition) MarshalJSON() ([]byte, error) {
	params, err := NormalizeSchema(t.Parameters)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonToolDefinition{
		Type: "function",
		Function: jsonToolFunction{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  data,
		},
	})
}

func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	var def jsonToolDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	t.Name = def.Function.Name
	t.Description = def.Function.Description
	t.Parameters = nil
	if len(def.Function.Parameters) > 0 {
		var s jsonschema.Schema
		if err := json.Unmarshal(def.Function.Parameters, &s); err != nil {
			return err
		}
		t.Parameters = &s
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// SCHEMA NORMALIZATION

// NormalizeSchema converts a schema to its raw map form, ensuring every
// object node carries "properties", "required" and
// "additionalProperties": false, as the chat API expects for function
// tool parameters. A nil schema yields the fixed empty-object schema.
func NormalizeSchema(s *jsonschema.Schema) (map[string]any, error) {
	if s == nil {
		return emptyObjectSchema(), nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	walkSchemaMap(m, func(node map[string]any) {
		if node["type"] != "object" {
			return
		}
		if _, ok := node["properties"]; !ok {
			node["properties"] = map[string]any{}
		}
		if _, ok := node["required"]; !ok {
			node["required"] = []any{}
		}
		node["additionalProperties"] = false
	})
	return m, nil
}

// walkSchemaMap recursively visits every map node in the schema tree.
func walkSchemaMap(m map[string]any, visit func(map[string]any)) {
	if m == nil {
		return
	}
	visit(m)
	for _, val := range m {
		switch v := val.(type) {
		case map[string]any:
			walkSchemaMap(v, visit)
		case []any:
			for _, item := range v {
				if node, ok := item.(map[string]any); ok {
					walkSchemaMap(node, visit)
				}
			}
		}
	}
}

// emptyObjectSchema is the parameters schema for a tool with no arguments.
func emptyObjectSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"required":             []any{},
		"additionalProperties": false,
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDefinition) String() string {
	return Stringify(t)
}

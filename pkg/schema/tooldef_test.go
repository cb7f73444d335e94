package schema_test

import (
	"encoding/json"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	assert "github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v3"

	schema "github.com/zxss702/go-openai/pkg/schema"
)

func Test_tooldef_001(t *testing.T) {
	assert := assert.New(t)

	// No parameters serializes the fixed empty-object schema
	def := schema.ToolDefinition{Name: "ping", Description: "Health check"}
	data, err := json.Marshal(def)
	assert.NoError(err)
	assert.JSONEq(`{
		"type": "function",
		"function": {
			"name": "ping",
			"description": "Health check",
			"parameters": {
				"type": "object",
				"properties": {},
				"required": [],
				"additionalProperties": false
			}
		}
	}`, string(data))
}

func Test_tooldef_002(t *testing.T) {
	assert := assert.New(t)

	// Object parameters carry properties, required and
	// additionalProperties false at every level
	def := schema.ToolDefinition{
		Name:        "get_weather",
		Description: "Get the weather",
		Parameters: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"location": {Type: "string"},
				"detail": {
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"units": {Type: "string"},
					},
				},
			},
			Required: []string{"location"},
		},
	}
	data, err := json.Marshal(def)
	assert.NoError(err)
	assert.JSONEq(`{
		"type": "function",
		"function": {
			"name": "get_weather",
			"description": "Get the weather",
			"parameters": {
				"type": "object",
				"properties": {
					"location": {"type": "string"},
					"detail": {
						"type": "object",
						"properties": {
							"units": {"type": "string"}
						},
						"required": [],
						"additionalProperties": false
					}
				},
				"required": ["location"],
				"additionalProperties": false
			}
		}
	}`, string(data))
}

func Test_tooldef_003(t *testing.T) {
	assert := assert.New(t)

	// Round-trip through the wire envelope
	def := schema.ToolDefinition{
		Name:        "lookup",
		Description: "Look something up",
		Parameters: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"q": {Type: "string"},
			},
			Required: []string{"q"},
		},
	}
	data, err := json.Marshal(def)
	assert.NoError(err)

	var decoded schema.ToolDefinition
	assert.NoError(json.Unmarshal(data, &decoded))
	assert.Equal("lookup", decoded.Name)
	assert.Equal("Look something up", decoded.Description)
	if assert.NotNil(decoded.Parameters) {
		assert.Equal("object", decoded.Parameters.Type)
		assert.NotNil(decoded.Parameters.Properties["q"])
	}
}

func Test_jsonschema_001(t *testing.T) {
	assert := assert.New(t)

	// JSON source passes through verbatim
	var s schema.JSONSchema
	assert.NoError(json.Unmarshal([]byte(`{"type":"object"}`), &s))
	assert.JSONEq(`{"type":"object"}`, string(s.Bytes()))

	m, err := s.Map()
	assert.NoError(err)
	assert.Equal("object", m["type"])
}

func Test_jsonschema_002(t *testing.T) {
	assert := assert.New(t)

	// YAML source is converted to JSON bytes
	var doc struct {
		Schema schema.JSONSchema `yaml:"schema"`
	}
	assert.NoError(yaml.Unmarshal([]byte("schema:\n  type: object\n  required:\n    - name\n"), &doc))
	assert.JSONEq(`{"type":"object","required":["name"]}`, string(doc.Schema.Bytes()))
}

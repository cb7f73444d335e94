package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	openai "github.com/zxss702/go-openai"
	tool "github.com/zxss702/go-openai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TEST TYPES

type weatherInput struct {
	Location string `json:"location" description:"City and country"`
	Units    *string `json:"units"`
}

func newWeatherTool(t *testing.T) tool.Tool {
	t.Helper()
	weather, err := tool.New("get_weather", "Get the current weather", func(_ context.Context, in weatherInput) (any, error) {
		return "sunny in " + in.Location, nil
	})
	assert.NoError(t, err)
	return weather
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	// Register and look up
	tk, err := tool.NewToolkit(newWeatherTool(t))
	assert.NoError(err)
	assert.NotNil(tk.Lookup("get_weather"))
	assert.Nil(tk.Lookup("missing"))
	assert.Len(tk.Tools(), 1)
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	// Invalid names are rejected
	bad, err := tool.NewSimple("not a name", "", func(context.Context) (any, error) { return nil, nil })
	assert.NoError(err)
	_, err = tool.NewToolkit(bad)
	assert.ErrorIs(err, openai.ErrBadParameter)

	// Duplicate names are rejected
	tk, err := tool.NewToolkit(newWeatherTool(t))
	assert.NoError(err)
	assert.ErrorIs(tk.Register(newWeatherTool(t)), openai.ErrConflict)
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	// Run with valid input
	tk, err := tool.NewToolkit(newWeatherTool(t))
	assert.NoError(err)
	result, err := tk.Run(context.Background(), "get_weather", json.RawMessage(`{"location":"Berlin, Germany"}`))
	assert.NoError(err)
	assert.Equal("sunny in Berlin, Germany", result)

	// Unknown tool
	_, err = tk.Run(context.Background(), "missing", nil)
	assert.ErrorIs(err, openai.ErrNotFound)

	// Input failing schema validation
	_, err = tk.Run(context.Background(), "get_weather", json.RawMessage(`{"location":42}`))
	assert.ErrorIs(err, openai.ErrBadParameter)

	// Malformed JSON input
	_, err = tk.Run(context.Background(), "get_weather", json.RawMessage(`{`))
	assert.ErrorIs(err, openai.ErrBadParameter)
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)

	// Tools without input skip validation
	ping, err := tool.NewSimple("ping", "Health check", func(context.Context) (any, error) {
		return "pong", nil
	})
	assert.NoError(err)
	tk, err := tool.NewToolkit(ping)
	assert.NoError(err)
	result, err := tk.Run(context.Background(), "ping", nil)
	assert.NoError(err)
	assert.Equal("pong", result)
}

func Test_tool_005(t *testing.T) {
	assert := assert.New(t)

	// Descriptors serialize to the function-tool envelope
	tk, err := tool.NewToolkit(newWeatherTool(t))
	assert.NoError(err)
	defs, err := tk.Definitions()
	assert.NoError(err)
	assert.Len(defs, 1)

	data, err := json.Marshal(defs[0])
	assert.NoError(err)
	assert.JSONEq(`{
		"type": "function",
		"function": {
			"name": "get_weather",
			"description": "Get the current weather",
			"parameters": {
				"type": "object",
				"properties": {
					"location": {"type": "string", "description": "City and country"},
					"units": {"type": "string"}
				},
				"required": ["location"],
				"additionalProperties": false
			}
		}
	}`, string(data))
}

func Test_tool_006(t *testing.T) {
	assert := assert.New(t)

	// A tool with no parameters serializes the fixed empty-object schema
	ping, err := tool.NewSimple("ping", "Health check", func(context.Context) (any, error) {
		return nil, nil
	})
	assert.NoError(err)
	def, err := tool.Definition(ping)
	assert.NoError(err)

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

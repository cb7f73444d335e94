package schema_test

import (
	"errors"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	schema "github.com/zxss702/go-openai/pkg/schema"
)

func Test_message_001(t *testing.T) {
	assert := assert.New(t)

	// Simple user message
	msg, err := schema.NewMessage(schema.RoleUser, "Hello")
	assert.NoError(err)
	assert.Equal(schema.RoleUser, msg.Role)
	assert.Equal("Hello", msg.Text())
	assert.Empty(msg.Thinking())
	assert.Empty(msg.ToolCalls())
}

func Test_message_002(t *testing.T) {
	assert := assert.New(t)

	// Text blocks join with newlines
	msg, err := schema.NewMessage(schema.RoleAssistant, "first", schema.WithText("second"))
	assert.NoError(err)
	assert.Equal("first\nsecond", msg.Text())
}

func Test_message_003(t *testing.T) {
	assert := assert.New(t)

	// Tool results attach to a tool-role message
	msg, err := schema.NewMessage(schema.RoleTool, "", schema.WithToolResults(
		schema.NewToolResult("call_1", "get_weather", map[string]any{"sky": "clear"}),
		schema.NewToolError("call_2", "get_time", errors.New("unreachable")),
	))
	assert.NoError(err)
	assert.Len(msg.Content, 2)
	assert.NotNil(msg.Content[0].ToolResult)
	assert.JSONEq(`{"sky":"clear"}`, string(msg.Content[0].ToolResult.Content))
	assert.False(msg.Content[0].ToolResult.IsError)
	assert.True(msg.Content[1].ToolResult.IsError)

	// Non-result blocks are rejected
	_, err = schema.NewMessage(schema.RoleTool, "", schema.WithToolResults(schema.ContentBlock{}))
	assert.Error(err)
}

func Test_message_004(t *testing.T) {
	assert := assert.New(t)

	// Conversation accumulates messages and usage
	var conversation schema.Conversation
	user, err := schema.NewMessage(schema.RoleUser, "Hi")
	assert.NoError(err)
	conversation.Append(*user)

	reply, err := schema.NewMessage(schema.RoleAssistant, "Hello")
	assert.NoError(err)
	conversation.AppendWithUsage(*reply, &schema.Usage{PromptTokens: 3, CompletionTokens: 5, TotalTokens: 8})
	conversation.AppendWithUsage(*reply, &schema.Usage{PromptTokens: 2, CompletionTokens: 2, TotalTokens: 4})

	assert.Len(conversation, 3)
	usage := conversation.Usage()
	assert.Equal(uint(5), usage.PromptTokens)
	assert.Equal(uint(7), usage.CompletionTokens)
	assert.Equal(uint(12), usage.TotalTokens)
}

func Test_snapshot_001(t *testing.T) {
	assert := assert.New(t)

	// A completed fragment converts into a tool call
	fragment := schema.ToolCallFragment{
		Index:     0,
		ID:        "call_1",
		Type:      "function",
		Name:      "get_weather",
		Arguments: `{"location":"Berlin"}`,
	}
	call := fragment.ToolCall()
	assert.Equal("call_1", call.ID)
	assert.Equal("get_weather", call.Name)
	assert.JSONEq(`{"location":"Berlin"}`, string(call.Input))
}

package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message represents a single turn in a conversation with the model.
// It uses a universal content block representation that is reshaped
// into the wire format by the client.
type Message struct {
	Role    string         `json:"role"`             // "user", "assistant", "system"
	Content []ContentBlock `json:"content"`          // Array of content blocks
	Result  ResultType     `json:"result,omitempty"` // How generation finished
	Usage   *Usage         `json:"usage,omitempty"`  // Token usage, when reported
}

// ContentBlock represents a single piece of content within a message.
// Exactly one of the fields should be non-nil.
type ContentBlock struct {
	Text       *string     `json:"text,omitempty"`        // Answer text
	Thinking   *string     `json:"thinking,omitempty"`    // Reasoning/thinking text
	ToolCall   *ToolCall   `json:"tool_call,omitempty"`   // Tool invocation (assistant → user)
	ToolResult *ToolResult `json:"tool_result,omitempty"` // Tool response (user → assistant)
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID    string          `json:"id,omitempty"`    // Provider-assigned call ID
	Name  string          `json:"name"`            // Tool function name
	Input json.RawMessage `json:"input,omitempty"` // JSON-encoded arguments
}

// ToolResult represents the result of running a tool
type ToolResult struct {
	ID      string          `json:"id,omitempty"`      // Matches the ToolCall ID
	Name    string          `json:"name,omitempty"`    // Tool function name
	Content json.RawMessage `json:"content,omitempty"` // JSON-encoded result
	IsError bool            `json:"is_error,omitempty"`
}

// A generic option type which can modify a message on creation
type Opt func(*Message) error

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage creates a message with the given role and text content,
// applying any additional options
func NewMessage(role, text string, opts ...Opt) (*Message, error) {
	message := &Message{Role: role}
	if text != "" {
		message.Content = append(message.Content, ContentBlock{Text: &text})
	}
	for _, o := range opts {
		if err := o(message); err != nil {
			return nil, err
		}
	}
	return message, nil
}

// NewToolResult creates a content block containing a successful tool result
func NewToolResult(id, name string, v any) ContentBlock {
	data, err := json.Marshal(v)
	if err != nil {
		return NewToolError(id, name, err)
	}
	return ContentBlock{
		ToolResult: &ToolResult{
			ID:      id,
			Name:    name,
			Content: json.RawMessage(data),
		},
	}
}

// NewToolError creates a content block containing a tool error result
func NewToolError(id, name string, err error) ContentBlock {
	return ContentBlock{
		ToolResult: &ToolResult{
			ID:      id,
			Name:    name,
			Content: json.RawMessage(fmt.Sprintf("%q", err.Error())),
			IsError: true,
		},
	}
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithText appends an additional text content block to the message
func WithText(text string) Opt {
	return func(m *Message) error {
		if text == "" {
			return nil
		}
		m.Content = append(m.Content, ContentBlock{Text: &text})
		return nil
	}
}

// WithToolResults appends tool result blocks to the message
func WithToolResults(results ...ContentBlock) Opt {
	return func(m *Message) error {
		for _, block := range results {
			if block.ToolResult == nil {
				return fmt.Errorf("content block is not a tool result")
			}
			m.Content = append(m.Content, block)
		}
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the concatenated text content from all text blocks in the message
func (m Message) Text() string {
	var result []string
	for _, block := range m.Content {
		if block.Text != nil {
			result = append(result, *block.Text)
		}
	}
	return strings.Join(result, "\n")
}

// Thinking returns the concatenated reasoning text from all thinking blocks
func (m Message) Thinking() string {
	var result []string
	for _, block := range m.Content {
		if block.Thinking != nil {
			result = append(result, *block.Thinking)
		}
	}
	return strings.Join(result, "\n")
}

// ToolCalls returns all tool call blocks in the message
func (m Message) ToolCalls() []ToolCall {
	var result []ToolCall
	for _, block := range m.Content {
		if block.ToolCall != nil {
			result = append(result, *block.ToolCall)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return Stringify(m)
}

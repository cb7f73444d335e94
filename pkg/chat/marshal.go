package chat

import (
	"encoding/json"
	"strings"

	// Packages
	openai "github.com/zxss702/go-openai"
	schema "github.com/zxss702/go-openai/pkg/schema"
	tool "github.com/zxss702/go-openai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// SESSION → WIRE MESSAGES

// messagesFromSession converts a conversation to the wire message
// format. Tool result messages are split so each carries exactly one
// tool_call_id.
func messagesFromSession(session *schema.Conversation) ([]chatMessage, error) {
	if session == nil {
		return nil, nil
	}

	messages := make([]chatMessage, 0, len(*session))
	for _, msg := range *session {
		if msg == nil {
			continue
		}
		if hasToolResult(msg) {
			for i := range msg.Content {
				if result := msg.Content[i].ToolResult; result != nil {
					messages = append(messages, chatMessage{
						Role:       roleTool,
						Content:    string(result.Content),
						ToolCallID: result.ID,
					})
				}
			}
			continue
		}
		messages = append(messages, messageFromSchema(msg))
	}
	return messages, nil
}

// messageFromSchema converts a single message to the wire format,
// concatenating text blocks and carrying tool calls for assistant
// turns.
func messageFromSchema(msg *schema.Message) chatMessage {
	var text strings.Builder
	var toolCalls []chatToolCall

	for i := range msg.Content {
		block := &msg.Content[i]
		if block.Text != nil {
			text.WriteString(*block.Text)
		}
		if block.ToolCall != nil {
			toolCalls = append(toolCalls, chatToolCall{
				Id:   block.ToolCall.ID,
				Type: "function",
				Function: chatFunction{
					Name:      block.ToolCall.Name,
					Arguments: string(block.ToolCall.Input),
				},
			})
		}
	}

	return chatMessage{
		Role:      msg.Role,
		Content:   text.String(),
		ToolCalls: toolCalls,
	}
}

///////////////////////////////////////////////////////////////////////////////
// WIRE RESPONSE → SCHEMA MESSAGE

// messageFromResponse converts a chat completion response to a message.
func messageFromResponse(resp *chatCompletionResponse) (*schema.Message, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, openai.ErrDecode.With("response has no choices")
	}

	choice := resp.Choices[0]
	var blocks []schema.ContentBlock

	if thinking := choice.Message.Reasoning; thinking != "" {
		blocks = append(blocks, schema.ContentBlock{Thinking: &thinking})
	} else if thinking := choice.Message.ReasoningContent; thinking != "" {
		blocks = append(blocks, schema.ContentBlock{Thinking: &thinking})
	}
	if text := choice.Message.Content; text != "" {
		blocks = append(blocks, schema.ContentBlock{Text: &text})
	}
	for _, tc := range choice.Message.ToolCalls {
		blocks = append(blocks, schema.ContentBlock{
			ToolCall: &schema.ToolCall{
				ID:    tc.Id,
				Name:  tc.Function.Name,
				Input: json.RawMessage(tc.Function.Arguments),
			},
		})
	}

	result := resultFromFinishReason(choice.FinishReason)
	if len(choice.Message.ToolCalls) > 0 {
		result = schema.ResultToolCall
	}

	return &schema.Message{
		Role:    schema.RoleAssistant,
		Content: blocks,
		Result:  result,
		Usage:   usageToSchema(resp.Usage),
	}, nil
}

// messageFromFragments builds the final message of a streamed call from
// the accumulated state.
func messageFromFragments(text, thinking string, fragments []schema.ToolCallFragment, finishReason string, usage *chatUsage) *schema.Message {
	var blocks []schema.ContentBlock

	if thinking != "" {
		blocks = append(blocks, schema.ContentBlock{Thinking: &thinking})
	}
	if text != "" {
		blocks = append(blocks, schema.ContentBlock{Text: &text})
	}
	for _, fragment := range fragments {
		call := fragment.ToolCall()
		blocks = append(blocks, schema.ContentBlock{ToolCall: &call})
	}

	result := resultFromFinishReason(finishReason)
	if len(fragments) > 0 {
		result = schema.ResultToolCall
	}

	return &schema.Message{
		Role:    schema.RoleAssistant,
		Content: blocks,
		Result:  result,
		Usage:   usageToSchema(usage),
	}
}

///////////////////////////////////////////////////////////////////////////////
// USAGE

// usageToSchema converts wire usage to schema usage.
func usageToSchema(usage *chatUsage) *schema.Usage {
	if usage == nil {
		return nil
	}
	result := &schema.Usage{
		PromptTokens:     uint(usage.PromptTokens),
		CompletionTokens: uint(usage.CompletionTokens),
		TotalTokens:      uint(usage.TotalTokens),
	}
	if usage.CompletionTokensDetails != nil {
		result.ReasoningTokens = uint(usage.CompletionTokensDetails.ReasoningTokens)
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CONVERSION

// toolsFromToolkit serializes the toolkit's descriptors for the request.
func toolsFromToolkit(tk *tool.Toolkit) (json.RawMessage, error) {
	defs, err := tk.Definitions()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return json.Marshal(defs)
}

///////////////////////////////////////////////////////////////////////////////
// FINISH REASON → RESULT TYPE

// resultFromFinishReason maps finish reasons to schema.ResultType.
func resultFromFinishReason(reason string) schema.ResultType {
	switch reason {
	case finishReasonStop:
		return schema.ResultStop
	case finishReasonLength:
		return schema.ResultMaxTokens
	case finishReasonToolCalls:
		return schema.ResultToolCall
	case finishReasonContentFilter:
		return schema.ResultBlocked
	case finishReasonError:
		return schema.ResultError
	default:
		return schema.ResultOther
	}
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// hasToolResult reports whether any content block is a tool result.
func hasToolResult(msg *schema.Message) bool {
	for _, b := range msg.Content {
		if b.ToolResult != nil {
			return true
		}
	}
	return false
}

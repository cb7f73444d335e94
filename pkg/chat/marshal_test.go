package chat

import (
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"

	openai "github.com/zxss702/go-openai"
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// UNIT TESTS — messageFromResponse

func Test_messageFromResponse_001(t *testing.T) {
	// Plain text response with usage
	assert := assert.New(t)

	resp := &chatCompletionResponse{
		Choices: []chatChoice{{
			Message:      chatMessage{Role: roleAssistant, Content: "Hello there"},
			FinishReason: finishReasonStop,
		}},
		Usage: &chatUsage{PromptTokens: 4, CompletionTokens: 3, TotalTokens: 7},
	}
	msg, err := messageFromResponse(resp)
	assert.NoError(err)
	assert.Equal(schema.RoleAssistant, msg.Role)
	assert.Equal("Hello there", msg.Text())
	assert.Equal(schema.ResultStop, msg.Result)
	if assert.NotNil(msg.Usage) {
		assert.Equal(uint(7), msg.Usage.TotalTokens)
	}
}

func Test_messageFromResponse_002(t *testing.T) {
	// Reasoning content becomes a thinking block, under either field
	assert := assert.New(t)

	resp := &chatCompletionResponse{
		Choices: []chatChoice{{
			Message: chatMessage{
				Role:      roleAssistant,
				Content:   "Answer",
				Reasoning: "Chain of thought",
			},
			FinishReason: finishReasonStop,
		}},
	}
	msg, err := messageFromResponse(resp)
	assert.NoError(err)
	assert.Equal("Chain of thought", msg.Thinking())
	assert.Equal("Answer", msg.Text())

	resp.Choices[0].Message.Reasoning = ""
	resp.Choices[0].Message.ReasoningContent = "Alternate field"
	msg, err = messageFromResponse(resp)
	assert.NoError(err)
	assert.Equal("Alternate field", msg.Thinking())
}

func Test_messageFromResponse_003(t *testing.T) {
	// Tool calls upgrade the result type
	assert := assert.New(t)

	resp := &chatCompletionResponse{
		Choices: []chatChoice{{
			Message: chatMessage{
				Role: roleAssistant,
				ToolCalls: []chatToolCall{{
					Id:       "call_1",
					Type:     "function",
					Function: chatFunction{Name: "get_weather", Arguments: `{"location":"Berlin"}`},
				}},
			},
			FinishReason: finishReasonStop,
		}},
	}
	msg, err := messageFromResponse(resp)
	assert.NoError(err)
	assert.Equal(schema.ResultToolCall, msg.Result)
	calls := msg.ToolCalls()
	assert.Len(calls, 1)
	assert.Equal("get_weather", calls[0].Name)
}

func Test_messageFromResponse_004(t *testing.T) {
	// Empty responses are a decode error
	assert := assert.New(t)

	_, err := messageFromResponse(nil)
	assert.ErrorIs(err, openai.ErrDecode)
	_, err = messageFromResponse(&chatCompletionResponse{})
	assert.ErrorIs(err, openai.ErrDecode)
}

///////////////////////////////////////////////////////////////////////////////
// UNIT TESTS — finish reasons

func Test_resultFromFinishReason_001(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(schema.ResultStop, resultFromFinishReason(finishReasonStop))
	assert.Equal(schema.ResultMaxTokens, resultFromFinishReason(finishReasonLength))
	assert.Equal(schema.ResultToolCall, resultFromFinishReason(finishReasonToolCalls))
	assert.Equal(schema.ResultBlocked, resultFromFinishReason(finishReasonContentFilter))
	assert.Equal(schema.ResultError, resultFromFinishReason(finishReasonError))
	assert.Equal(schema.ResultOther, resultFromFinishReason("unknown"))
}

package chat

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - OpenAI-compatible REST API wire format
//
// Reference: https://platform.openai.com/docs/api-reference/chat/create
//            https://platform.openai.com/docs/api-reference/chat/streaming

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS — REQUEST

// chatCompletionRequest is the request body for POST /v1/chat/completions.
type chatCompletionRequest struct {
	Model            string          `json:"model"`
	Messages         []chatMessage   `json:"messages"`
	Temperature      *float64        `json:"temperature,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	MaxTokens        *int            `json:"max_completion_tokens,omitempty"`
	Stream           bool            `json:"stream,omitempty"`
	StreamOptions    *streamOptions  `json:"stream_options,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	Seed             *uint           `json:"seed,omitempty"`
	Tools            json.RawMessage `json:"tools,omitempty"`
	ToolChoice       any             `json:"tool_choice,omitempty"`
	ResponseFormat   *responseFormat `json:"response_format,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	ReasoningEffort  string          `json:"reasoning_effort,omitempty"`
	User             string          `json:"user,omitempty"`
}

// streamOptions modifies streaming behaviour; include_usage asks the
// server to attach token usage to the terminal chunk.
type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

///////////////////////////////////////////////////////////////////////////////
// CHAT COMPLETIONS — RESPONSE

// chatCompletionResponse is the response body from POST /v1/chat/completions
// (non-streaming).
type chatCompletionResponse struct {
	Id      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

// chatChoice is one element of the choices array.
type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// chatUsage reports token counts for a chat completion request.
type chatUsage struct {
	PromptTokens            int                      `json:"prompt_tokens"`
	CompletionTokens        int                      `json:"completion_tokens"`
	TotalTokens             int                      `json:"total_tokens"`
	CompletionTokensDetails *completionTokensDetails `json:"completion_tokens_details,omitempty"`
}

// completionTokensDetails breaks down completion tokens.
type completionTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES

// chatMessage represents a single turn in a conversation. Tool-result
// messages carry the ToolCallID to correlate with the original call.
type chatMessage struct {
	Role             string         `json:"role"`
	Content          string         `json:"content,omitempty"`
	Reasoning        string         `json:"reasoning,omitempty"`
	ReasoningContent string         `json:"reasoning_content,omitempty"`
	ToolCalls        []chatToolCall `json:"tool_calls,omitempty"`   // assistant only
	ToolCallID       string         `json:"tool_call_id,omitempty"` // tool role only
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CALLS

// chatToolCall represents a tool invocation in an assistant message.
// In streaming responses the same struct carries a partial fragment,
// with Index identifying the logical call across chunks.
type chatToolCall struct {
	Index    *int         `json:"index,omitempty"` // streaming only
	Id       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"` // "function"
	Function chatFunction `json:"function"`
}

// chatFunction carries the function name and JSON-encoded arguments
// within a tool call. Both fields stream piecewise.
type chatFunction struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE FORMAT

// responseFormat constrains the model output format.
type responseFormat struct {
	Type       string          `json:"type"`                  // "text", "json_object", "json_schema"
	JSONSchema json.RawMessage `json:"json_schema,omitempty"` // for type "json_schema"
}

///////////////////////////////////////////////////////////////////////////////
// STREAMING

// chatCompletionChunk is a single SSE event for a streaming chat
// completion. The stream is terminated by a `data: [DONE]` sentinel.
type chatCompletionChunk struct {
	Id      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []chunkChoice `json:"choices"`
	Usage   *chatUsage    `json:"usage,omitempty"` // present in the final chunk
}

// chunkChoice carries the incremental delta for one choice.
type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason string     `json:"finish_reason,omitempty"`
}

// chunkDelta is the incremental content within a streaming chunk. Some
// servers stream reasoning under "reasoning", others under
// "reasoning_content"; both are accepted.
type chunkDelta struct {
	Role             string         `json:"role,omitempty"`
	Content          string         `json:"content,omitempty"`
	Reasoning        string         `json:"reasoning,omitempty"`
	ReasoningContent string         `json:"reasoning_content,omitempty"`
	ToolCalls        []chatToolCall `json:"tool_calls,omitempty"`
}

// thinking returns the reasoning text of the delta, whichever field
// carried it.
func (d chunkDelta) thinking() string {
	if d.Reasoning != "" {
		return d.Reasoning
	}
	return d.ReasoningContent
}

///////////////////////////////////////////////////////////////////////////////
// MODELS

// model represents a model from the models endpoint.
type model struct {
	Id      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// listModelsResponse is the response from GET /v1/models.
type listModelsResponse struct {
	Object string  `json:"object"`
	Data   []model `json:"data"`
}

///////////////////////////////////////////////////////////////////////////////
// FINISH REASON CONSTANTS

const (
	finishReasonStop          = "stop"
	finishReasonToolCalls     = "tool_calls"
	finishReasonLength        = "length"
	finishReasonContentFilter = "content_filter"
	finishReasonError         = "error"
)

///////////////////////////////////////////////////////////////////////////////
// ROLE CONSTANTS

const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
	roleTool      = "tool"
)

///////////////////////////////////////////////////////////////////////////////
// TOOL CHOICE CONSTANTS

const (
	toolChoiceAuto     = "auto"
	toolChoiceNone     = "none"
	toolChoiceRequired = "required"
)

///////////////////////////////////////////////////////////////////////////////
// RESPONSE FORMAT CONSTANTS

const (
	responseFormatJSONObject = "json_object"
	responseFormatJSONSchema = "json_schema"
)

///////////////////////////////////////////////////////////////////////////////
// STREAMING CONSTANTS

const (
	streamDoneSentinel = "[DONE]"
)

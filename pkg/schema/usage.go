package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Usage reports token statistics for a completion. The server typically
// surfaces it once, on the terminal chunk of a streamed response.
type Usage struct {
	PromptTokens     uint `json:"prompt_tokens,omitempty"`
	CompletionTokens uint `json:"completion_tokens,omitempty"`
	TotalTokens      uint `json:"total_tokens,omitempty"`
	ReasoningTokens  uint `json:"reasoning_tokens,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (u Usage) String() string {
	return Stringify(u)
}

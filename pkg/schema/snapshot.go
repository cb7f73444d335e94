package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Snapshot is the view of a streamed response delivered to the caller's
// stream callback on each drain. TextDelta and ThinkingDelta carry only
// the text appended since the previous drain; Text and Thinking carry
// the full cumulative text so far. ToolCalls carries every tool-call
// fragment seen so far, with name and arguments concatenated across
// chunks.
type Snapshot struct {
	Phase         string             `json:"phase,omitempty"` // PhaseThinking or PhaseContent
	TextDelta     string             `json:"text_delta,omitempty"`
	ThinkingDelta string             `json:"thinking_delta,omitempty"`
	Text          string             `json:"text,omitempty"`
	Thinking      string             `json:"thinking,omitempty"`
	ToolCalls     []ToolCallFragment `json:"tool_calls,omitempty"`
}

// ToolCallFragment is the accumulating record of one tool invocation
// the model is requesting, keyed by the server-assigned index and built
// up piecewise across chunks.
type ToolCallFragment struct {
	Index     int    `json:"index"`
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Informational stream phase values. The phase reflects which channel
// the most recent chunk appended to; it has no effect on accumulation.
const (
	PhaseThinking = "thinking"
	PhaseContent  = "content"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ToolCall converts a fragment to a ToolCall with the concatenated
// arguments as raw JSON input
func (f ToolCallFragment) ToolCall() ToolCall {
	var input []byte
	if f.Arguments != "" {
		input = []byte(f.Arguments)
	}
	return ToolCall{
		ID:    f.ID,
		Name:  f.Name,
		Input: input,
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s Snapshot) String() string {
	return Stringify(s)
}

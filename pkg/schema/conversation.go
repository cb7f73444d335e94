package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is a sequence of messages exchanged with the model
type Conversation []*Message

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the conversation
func (c *Conversation) Append(message Message) {
	*c = append(*c, &message)
}

// AppendWithUsage adds a message to the conversation, attaching the
// reported token usage to the appended message
func (c *Conversation) AppendWithUsage(message Message, usage *Usage) {
	if usage != nil {
		message.Usage = usage
	}
	*c = append(*c, &message)
}

// Usage returns the summed token usage across all messages in the
// conversation which carry usage statistics
func (c Conversation) Usage() Usage {
	var total Usage
	for _, msg := range c {
		if msg.Usage == nil {
			continue
		}
		total.PromptTokens += msg.Usage.PromptTokens
		total.CompletionTokens += msg.Usage.CompletionTokens
		total.TotalTokens += msg.Usage.TotalTokens
		total.ReasoningTokens += msg.Usage.ReasoningTokens
	}
	return total
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return Stringify(c)
}

package chat

import (
	"encoding/json"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"

	openai "github.com/zxss702/go-openai"
	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
	tool "github.com/zxss702/go-openai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// GENERATION OPTIONS
//
// See: https://platform.openai.com/docs/api-reference/chat/create

// WithSystemPrompt sets the system prompt for the request.
func WithSystemPrompt(value string) opt.Opt {
	return opt.SetString(opt.SystemPromptKey, value)
}

// WithTemperature sets the temperature for the request (0.0 to 2.0).
// Higher values produce more random output, lower values more deterministic.
func WithTemperature(value float64) opt.Opt {
	if value < 0 || value > 2 {
		return opt.Error(openai.ErrBadParameter.With("temperature must be between 0.0 and 2.0"))
	}
	return opt.SetFloat64(opt.TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of tokens to generate (minimum 1).
func WithMaxTokens(value uint) opt.Opt {
	if value < 1 {
		return opt.Error(openai.ErrBadParameter.With("max_tokens must be at least 1"))
	}
	return opt.SetUint(opt.MaxTokensKey, value)
}

// WithTopP sets the nucleus sampling parameter (0.0 to 1.0).
// Tokens are selected from the smallest set whose cumulative probability exceeds top_p.
func WithTopP(value float64) opt.Opt {
	if value < 0 || value > 1 {
		return opt.Error(openai.ErrBadParameter.With("top_p must be between 0.0 and 1.0"))
	}
	return opt.SetFloat64(opt.TopPKey, value)
}

// WithStopSequences sets custom stop sequences for the request.
// Generation stops when any of the specified sequences is encountered.
func WithStopSequences(values ...string) opt.Opt {
	if len(values) == 0 {
		return opt.Error(openai.ErrBadParameter.With("at least one stop sequence is required"))
	}
	return opt.AddString(opt.StopSequencesKey, values...)
}

// WithSeed sets the random seed for deterministic generation.
func WithSeed(value uint) opt.Opt {
	return opt.SetUint(opt.SeedKey, value)
}

// WithPresencePenalty sets the presence penalty (-2.0 to 2.0).
// Positive values penalise tokens that have already appeared, encouraging
// the model to talk about new topics.
func WithPresencePenalty(value float64) opt.Opt {
	if value < -2 || value > 2 {
		return opt.Error(openai.ErrBadParameter.With("presence_penalty must be between -2.0 and 2.0"))
	}
	return opt.SetFloat64(opt.PresencePenaltyKey, value)
}

// WithFrequencyPenalty sets the frequency penalty (-2.0 to 2.0).
// Positive values penalise tokens proportionally to how often they have
// appeared so far, reducing repetition.
func WithFrequencyPenalty(value float64) opt.Opt {
	if value < -2 || value > 2 {
		return opt.Error(openai.ErrBadParameter.With("frequency_penalty must be between -2.0 and 2.0"))
	}
	return opt.SetFloat64(opt.FrequencyPenaltyKey, value)
}

// WithReasoningEffort sets the reasoning effort for reasoning models
// ("minimal", "low", "medium" or "high").
func WithReasoningEffort(value string) opt.Opt {
	switch value {
	case "minimal", "low", "medium", "high":
		return opt.SetString(opt.ReasoningEffortKey, value)
	}
	return opt.Error(openai.ErrBadParameter.Withf("invalid reasoning effort: %q", value))
}

// WithUser sets an end-user identifier for abuse monitoring.
func WithUser(value string) opt.Opt {
	return opt.SetString(opt.UserKey, value)
}

// WithJSONOutput constrains the model to produce JSON conforming to the given schema.
func WithJSONOutput(schema *jsonschema.Schema) opt.Opt {
	if schema == nil {
		return opt.Error(openai.ErrBadParameter.With("schema is required for JSON output"))
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return opt.Error(openai.ErrBadParameter.Withf("failed to serialize JSON schema: %v", err))
	}
	return opt.SetString(opt.JSONSchemaKey, string(data))
}

// WithJSONSchema constrains the model output with a raw schema document,
// typically loaded from a JSON or YAML file.
func WithJSONSchema(value schema.JSONSchema) opt.Opt {
	if len(value) == 0 {
		return opt.Error(openai.ErrBadParameter.With("schema is required for JSON output"))
	}
	return opt.SetString(opt.JSONSchemaKey, string(value.Bytes()))
}

// WithJSONObject constrains the model to produce a JSON object without
// a specific schema.
func WithJSONObject() opt.Opt {
	return opt.SetBool("json-object", true)
}

///////////////////////////////////////////////////////////////////////////////
// STREAMING OPTIONS

// WithStream streams the response, invoking the callback with each
// drained snapshot.
func WithStream(fn opt.StreamFn) opt.Opt {
	if fn == nil {
		return opt.Error(openai.ErrBadParameter.With("stream callback is required"))
	}
	return opt.SetStream(fn)
}

// WithStreamInterval drains snapshots to the callback from a background
// poller at the given interval, instead of after every event.
func WithStreamInterval(fn opt.StreamFn, interval time.Duration) opt.Opt {
	if fn == nil {
		return opt.Error(openai.ErrBadParameter.With("stream callback is required"))
	}
	if interval <= 0 {
		return opt.Error(openai.ErrBadParameter.With("stream interval must be positive"))
	}
	return opt.WithOpts(
		opt.SetStream(fn),
		opt.SetDuration(opt.StreamIntervalKey, interval),
	)
}

///////////////////////////////////////////////////////////////////////////////
// TOOL OPTIONS

// WithToolkit makes the toolkit's tools available to the model.
func WithToolkit(tk *tool.Toolkit) opt.Opt {
	if tk == nil {
		return opt.Error(openai.ErrBadParameter.With("toolkit is required"))
	}
	return opt.WithAny(opt.ToolkitKey, tk)
}

// WithToolChoiceAuto lets the model decide whether to use tools.
func WithToolChoiceAuto() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceAuto)
}

// WithToolChoiceNone prevents the model from using any tools.
func WithToolChoiceNone() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceNone)
}

// WithToolChoiceRequired forces the model to use one of the available tools.
func WithToolChoiceRequired() opt.Opt {
	return opt.SetString(opt.ToolChoiceKey, toolChoiceRequired)
}

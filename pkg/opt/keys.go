package opt

import (
	"strconv"
	"time"

	// Packages
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// StreamFn is invoked with each drained snapshot of a streamed response
type StreamFn func(schema.Snapshot) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Well-known option keys, shared between the option constructors and the
// request builders
const (
	SystemPromptKey     = "system-prompt"
	TemperatureKey      = "temperature"
	TopPKey             = "top-p"
	MaxTokensKey        = "max-tokens"
	StopSequencesKey    = "stop-sequences"
	SeedKey             = "seed"
	PresencePenaltyKey  = "presence-penalty"
	FrequencyPenaltyKey = "frequency-penalty"
	JSONSchemaKey       = "json-schema"
	ToolChoiceKey       = "tool-choice"
	ToolkitKey          = "toolkit"
	StreamKey           = "stream"
	StreamIntervalKey   = "stream-interval"
	ReasoningEffortKey  = "reasoning-effort"
	UserKey             = "user"
	LimitKey            = "limit"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetStream returns the streaming callback, or nil when not streaming
func (o *Options) GetStream() StreamFn {
	if value, ok := o.values[StreamKey]; ok {
		if fn, ok := value.(StreamFn); ok {
			return fn
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// SetString sets a single string value for a key
func SetString(key, value string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value)
		return nil
	}
}

// AddString appends string values for a key
func AddString(key string, value ...string) Opt {
	return WithString(key, value...)
}

// SetUint sets a single uint value for a key
func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatUint(uint64(value), 10))
		return nil
	}
}

// SetFloat64 sets a single float64 value for a key
func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetBool sets or clears a boolean key
func SetBool(key string, value bool) Opt {
	return func(o *Options) error {
		if value {
			o.Values.Set(key, "")
		} else {
			o.Values.Del(key)
		}
		return nil
	}
}

// SetDuration sets a duration value for a key
func SetDuration(key string, value time.Duration) Opt {
	return WithDuration(key, value)
}

// SetStream sets the streaming callback
func SetStream(fn StreamFn) Opt {
	return func(o *Options) error {
		o.values[StreamKey] = fn
		return nil
	}
}

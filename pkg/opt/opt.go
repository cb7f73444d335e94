package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a client or a request
type Opt func(*Options) error

// Options is the set of applied options. String-like values live in the
// url.Values map so they can double as query parameters; opaque values
// (callbacks, toolkits, schemas) live in the any-typed map.
type Options struct {
	url.Values
	values map[string]any
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*Options, error) {
	opts := &Options{Values: make(url.Values), values: make(map[string]any)}
	for _, opt := range o {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the named keys as query parameters
func (o *Options) Query(keys ...string) url.Values {
	query := make(url.Values)
	for _, key := range keys {
		if value, ok := o.Values[key]; ok {
			query[key] = value
		}
	}
	return query
}

// GetString returns the trimmed value for key, or empty string if not set
func (o *Options) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetStringArray returns all values for key, each trimmed
func (o *Options) GetStringArray(key string) []string {
	values, ok := o.Values[key]
	if !ok {
		return nil
	}
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.TrimSpace(v)
	}
	return result
}

// GetBool returns true if key is present, false if absent
func (o *Options) GetBool(key string) bool {
	_, ok := o.Values[key]
	return ok
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *Options) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *Options) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// GetDuration returns the duration value for key, or 0 if not set or invalid
func (o *Options) GetDuration(key string) time.Duration {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := time.ParseDuration(strings.TrimSpace(values[0])); err == nil {
			return v
		}
	}
	return 0
}

// Get returns the opaque value for key
func (o *Options) Get(key string) (any, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Has returns true if the key exists, in either value map
func (o *Options) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.values[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *Options) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *Options) error {
		for _, opt := range options {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithString appends string values for a key
func WithString(key string, value ...string) Opt {
	return func(o *Options) error {
		for _, v := range value {
			o.Values.Add(key, v)
		}
		return nil
	}
}

// WithBool marks a key as present
func WithBool(key string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, "")
		return nil
	}
}

// WithUint appends uint values for a key
func WithUint(key string, value ...uint) Opt {
	return func(o *Options) error {
		for _, v := range value {
			o.Values.Add(key, fmt.Sprintf("%d", v))
		}
		return nil
	}
}

// WithFloat64 appends a float64 value for a key
func WithFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Add(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// WithDuration sets a duration value for a key
func WithDuration(key string, value time.Duration) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value.String())
		return nil
	}
}

// WithAny sets an opaque value for a key
func WithAny(key string, value any) Opt {
	return func(o *Options) error {
		o.values[key] = value
		return nil
	}
}

package opt_test

import (
	"errors"
	"testing"
	"time"

	// Packages
	assert "github.com/stretchr/testify/assert"

	opt "github.com/zxss702/go-openai/pkg/opt"
)

func Test_opt_001(t *testing.T) {
	assert := assert.New(t)

	// Empty apply
	o, err := opt.Apply()
	assert.NoError(err)
	assert.NotNil(o)
	assert.False(o.Has("missing"))
	assert.Equal("", o.GetString("missing"))
}

func Test_opt_002(t *testing.T) {
	assert := assert.New(t)

	// String values
	o, err := opt.Apply(opt.WithString("model", "gpt-4o-mini"))
	assert.NoError(err)
	assert.True(o.Has("model"))
	assert.Equal("gpt-4o-mini", o.GetString("model"))

	// Multiple values for same key
	o, err = opt.Apply(opt.WithString("stop", "a", "b"))
	assert.NoError(err)
	assert.Equal([]string{"a", "b"}, o.GetStringArray("stop"))
}

func Test_opt_003(t *testing.T) {
	assert := assert.New(t)

	// Numeric values
	o, err := opt.Apply(opt.WithUint("max_tokens", 1024), opt.WithFloat64("temperature", 0.7))
	assert.NoError(err)
	assert.Equal(uint(1024), o.GetUint("max_tokens"))
	assert.Equal(0.7, o.GetFloat64("temperature"))
	assert.Equal(uint(0), o.GetUint("missing"))
	assert.Equal(float64(0), o.GetFloat64("missing"))
}

func Test_opt_004(t *testing.T) {
	assert := assert.New(t)

	// Boolean presence
	o, err := opt.Apply(opt.WithBool("stream"))
	assert.NoError(err)
	assert.True(o.GetBool("stream"))
	assert.False(o.GetBool("missing"))
}

func Test_opt_005(t *testing.T) {
	assert := assert.New(t)

	// Duration values
	o, err := opt.Apply(opt.WithDuration("interval", 250*time.Millisecond))
	assert.NoError(err)
	assert.Equal(250*time.Millisecond, o.GetDuration("interval"))
	assert.Equal(time.Duration(0), o.GetDuration("missing"))
}

func Test_opt_006(t *testing.T) {
	assert := assert.New(t)

	// Opaque values
	fn := func() {}
	o, err := opt.Apply(opt.WithAny("callback", fn))
	assert.NoError(err)
	assert.True(o.Has("callback"))
	value, ok := o.Get("callback")
	assert.True(ok)
	assert.NotNil(value)
}

func Test_opt_007(t *testing.T) {
	assert := assert.New(t)

	// Errors propagate and abort application
	sentinel := errors.New("bad option")
	o, err := opt.Apply(opt.WithString("model", "x"), opt.Error(sentinel))
	assert.ErrorIs(err, sentinel)
	assert.Nil(o)
}

func Test_opt_008(t *testing.T) {
	assert := assert.New(t)

	// Combined options
	o, err := opt.Apply(opt.WithOpts(
		opt.WithString("model", "gpt-4o"),
		opt.WithUint("max_tokens", 16),
	))
	assert.NoError(err)
	assert.Equal("gpt-4o", o.GetString("model"))
	assert.Equal(uint(16), o.GetUint("max_tokens"))
}

func Test_opt_009(t *testing.T) {
	assert := assert.New(t)

	// Query projection only includes named keys
	o, err := opt.Apply(opt.WithString("limit", "10"), opt.WithString("model", "m"))
	assert.NoError(err)
	query := o.Query("limit")
	assert.Equal("10", query.Get("limit"))
	assert.Empty(query.Get("model"))
}

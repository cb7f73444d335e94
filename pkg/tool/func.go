package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"

	openai "github.com/zxss702/go-openai"
	schemagen "github.com/zxss702/go-openai/pkg/schemagen"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// fn is a tool backed by a Go function with a typed input
type fn[In any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	call        func(context.Context, In) (any, error)
}

// simple is a tool backed by a Go function without input
type simple struct {
	name        string
	description string
	call        func(context.Context) (any, error)
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a tool from a function taking a typed input. The input
// schema is derived up-front, so invalid input types fail here rather
// than on first use.
func New[In any](name, description string, call func(context.Context, In) (any, error)) (Tool, error) {
	if call == nil {
		return nil, openai.ErrBadParameter.With("call cannot be nil")
	}
	schema, err := schemagen.For[In]()
	if err != nil {
		return nil, err
	}
	return &fn[In]{
		name:        name,
		description: description,
		schema:      schema,
		call:        call,
	}, nil
}

// NewSimple creates a tool from a function taking no input.
func NewSimple(name, description string, call func(context.Context) (any, error)) (Tool, error) {
	if call == nil {
		return nil, openai.ErrBadParameter.With("call cannot be nil")
	}
	return &simple{
		name:        name,
		description: description,
		call:        call,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *fn[In]) Name() string {
	return t.name
}

func (t *fn[In]) Description() string {
	return t.description
}

func (t *fn[In]) Schema() (*jsonschema.Schema, error) {
	return t.schema, nil
}

func (t *fn[In]) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var in In
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, openai.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	return t.call(ctx, in)
}

func (t *simple) Name() string {
	return t.name
}

func (t *simple) Description() string {
	return t.description
}

func (t *simple) Schema() (*jsonschema.Schema, error) {
	return nil, nil
}

func (t *simple) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	return t.call(ctx)
}

/*
Package openai defines the interfaces and error values shared by the
chat-completions client in pkg/chat and its supporting packages.
*/
package openai

import (
	"context"

	// Packages
	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is the interface that wraps basic API client methods
type Client interface {
	// Return the provider name
	Name() string

	// ListModels returns the list of available models
	ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error)

	// GetModel returns the model with the given name
	GetModel(ctx context.Context, name string, opts ...opt.Opt) (*schema.Model, error)
}

// Generator is an interface for sending messages and conducting conversations
type Generator interface {
	// WithoutSession sends a single message and returns the response (stateless)
	WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, error)

	// WithSession sends a message within a session and returns the response (stateful)
	WithSession(ctx context.Context, model schema.Model, session *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, error)
}

/*
chat implements an API client for an OpenAI-compatible chat completions
endpoint, with streaming, tool calling and reasoning support.
https://platform.openai.com/docs/api-reference/chat
*/
package chat

import (
	"net/url"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"

	openai "github.com/zxss702/go-openai"
	modelcache "github.com/zxss702/go-openai/pkg/modelcache"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	*modelcache.ModelCache
}

var _ openai.Client = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultEndpoint = "https://api.openai.com/v1"
	defaultName     = "openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the OpenAI API with the given API key
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	return NewWithEndpoint(defaultEndpoint, apiKey, opts...)
}

// NewWithEndpoint creates a client for any OpenAI-compatible endpoint
// with the given API key
func NewWithEndpoint(endpoint, apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, openai.ErrNoCredential.With("missing API key")
	}
	if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, openai.ErrBadEndpoint.Withf("invalid endpoint: %q", endpoint)
	}
	opts = append(opts,
		client.OptEndpoint(endpoint),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: apiKey}),
	)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c, modelcache.NewModelCache(time.Hour, 40)}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return defaultName
}

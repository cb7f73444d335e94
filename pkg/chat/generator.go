package chat

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	errgroup "golang.org/x/sync/errgroup"

	openai "github.com/zxss702/go-openai"
	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
	tool "github.com/zxss702/go-openai/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACE CHECK

var _ openai.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithoutSession sends a single message and returns the response (stateless)
func (c *Client) WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if message == nil {
		return nil, openai.ErrBadParameter.With("message is required")
	}
	session := schema.Conversation{message}
	return c.generate(ctx, model.Name, &session, opts...)
}

// WithSession sends a message within a session and returns the response (stateful)
func (c *Client) WithSession(ctx context.Context, model schema.Model, session *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if session == nil {
		return nil, openai.ErrBadParameter.With("session is required")
	}
	if message == nil {
		return nil, openai.ErrBadParameter.With("message is required")
	}
	session.Append(*message)
	return c.generate(ctx, model.Name, session, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate is the core method that builds a request from options and sends it
func (c *Client) generate(ctx context.Context, model string, session *schema.Conversation, opts ...opt.Opt) (*schema.Message, error) {
	// Apply options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	streamFn := options.GetStream()

	// Build request
	request, err := generateRequestFromOpts(model, session, options)
	if err != nil {
		return nil, err
	}

	// Force stream flags when streaming callback is set
	if streamFn != nil {
		request.Stream = true
		request.StreamOptions = &streamOptions{IncludeUsage: true}
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	// Streaming path
	if streamFn != nil {
		return c.generateStream(ctx, payload, session, streamFn, options.GetDuration(opt.StreamIntervalKey))
	}

	// Non-streaming path
	var response chatCompletionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, err
	}

	message, err := messageFromResponse(&response)
	if err != nil {
		return nil, err
	}
	return processMessage(message, session)
}

// generateStream handles the SSE streaming response. Deltas drain to
// the callback synchronously after every event, or from a background
// poller when an interval is set.
func (c *Client) generateStream(ctx context.Context, payload client.Payload, session *schema.Conversation, streamFn opt.StreamFn, interval time.Duration) (*schema.Message, error) {
	acc := newAccumulator()
	perEvent := interval <= 0

	run := func(ctx context.Context) error {
		var discard chatCompletionResponse
		err := c.DoWithContext(ctx, payload, &discard,
			client.OptPath("chat", "completions"),
			client.OptTextStreamCallback(c.streamCallback(ctx, acc, streamFn, perEvent)),
		)
		// The callback returns io.EOF on the [DONE] sentinel to stop
		// the transport reading further events
		if err != nil && err != io.EOF {
			return err
		}
		return nil
	}

	if perEvent {
		if err := run(ctx); err != nil {
			return nil, err
		}
	} else {
		// Background poller drains pending deltas at the requested
		// interval while the reader keeps appending
		g, gctx := errgroup.WithContext(ctx)
		done := make(chan struct{})
		g.Go(func() error {
			defer close(done)
			return run(gctx)
		})
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				case <-ticker.C:
					if acc.hasPending() {
						if err := streamFn(acc.drain()); err != nil {
							return err
						}
					}
				}
			}
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// Cancellation is not a completion path
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Final unconditional drain, so the callback observes the true
	// final cumulative state even when nothing is pending
	if err := streamFn(acc.drain()); err != nil {
		return nil, err
	}

	// Build the final message from the accumulated state
	text, thinking, fragments, finishReason, usage := acc.result()
	return processMessage(messageFromFragments(text, thinking, fragments, finishReason, usage), session)
}

// streamCallback returns the handler for one SSE event. When drain is
// set, pending deltas are drained to the callback after each event.
func (c *Client) streamCallback(ctx context.Context, acc *accumulator, streamFn opt.StreamFn, drain bool) func(client.TextStreamEvent) error {
	return func(event client.TextStreamEvent) error {
		// Stop consuming once cancellation is observed
		if err := ctx.Err(); err != nil {
			return err
		}

		// Check for the [DONE] sentinel
		data := strings.TrimSpace(event.Data)
		if data == streamDoneSentinel {
			return io.EOF
		}

		// Parse the SSE data as JSON
		var chunk chatCompletionChunk
		if err := event.Json(&chunk); err != nil {
			return openai.ErrDecode.Withf("malformed chunk: %v", err)
		}

		// Extract usage (typically in the final chunk)
		acc.setUsage(chunk.Usage)

		// Apply the delta
		if len(chunk.Choices) > 0 {
			choice := chunk.Choices[0]
			acc.setFinishReason(choice.FinishReason)
			acc.apply(choice.Delta)
		}

		// Synchronous drain policy
		if drain && acc.hasPending() {
			if err := streamFn(acc.drain()); err != nil {
				return err
			}
		}

		return nil
	}
}

// processMessage appends the response to the session and maps finish
// reasons that need caller attention to errors
func processMessage(message *schema.Message, session *schema.Conversation) (*schema.Message, error) {
	session.AppendWithUsage(*message, message.Usage)

	switch message.Result {
	case schema.ResultMaxTokens:
		return message, openai.ErrMaxTokens
	case schema.ResultError:
		return message, openai.ErrInternalServerError
	}
	return message, nil
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

// generateRequestFromOpts builds a chatCompletionRequest from the session and applied options
func generateRequestFromOpts(model string, session *schema.Conversation, options *opt.Options) (*chatCompletionRequest, error) {
	// Convert session to the wire message format
	messages, err := messagesFromSession(session)
	if err != nil {
		return nil, err
	}

	request := &chatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	// System prompt — prepend as a system role message
	if systemPrompt := options.GetString(opt.SystemPromptKey); systemPrompt != "" {
		sysMsg := chatMessage{
			Role:    roleSystem,
			Content: systemPrompt,
		}
		request.Messages = append([]chatMessage{sysMsg}, request.Messages...)
	}

	// Temperature
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		request.Temperature = &v
	}

	// Top P
	if options.Has(opt.TopPKey) {
		v := options.GetFloat64(opt.TopPKey)
		request.TopP = &v
	}

	// Max tokens
	if options.Has(opt.MaxTokensKey) {
		v := int(options.GetUint(opt.MaxTokensKey))
		request.MaxTokens = &v
	}

	// Stop sequences
	if ss := options.GetStringArray(opt.StopSequencesKey); len(ss) > 0 {
		request.Stop = ss
	}

	// Random seed
	if options.Has(opt.SeedKey) {
		v := options.GetUint(opt.SeedKey)
		request.Seed = &v
	}

	// Presence penalty
	if options.Has(opt.PresencePenaltyKey) {
		v := options.GetFloat64(opt.PresencePenaltyKey)
		request.PresencePenalty = &v
	}

	// Frequency penalty
	if options.Has(opt.FrequencyPenaltyKey) {
		v := options.GetFloat64(opt.FrequencyPenaltyKey)
		request.FrequencyPenalty = &v
	}

	// Reasoning effort
	if v := options.GetString(opt.ReasoningEffortKey); v != "" {
		request.ReasoningEffort = v
	}

	// End-user identifier
	if v := options.GetString(opt.UserKey); v != "" {
		request.User = v
	}

	// Response format (JSON schema or JSON object)
	if schemaJSON := options.GetString(opt.JSONSchemaKey); schemaJSON != "" {
		request.ResponseFormat = &responseFormat{
			Type:       responseFormatJSONSchema,
			JSONSchema: json.RawMessage(schemaJSON),
		}
	} else if options.GetBool("json-object") {
		request.ResponseFormat = &responseFormat{
			Type: responseFormatJSONObject,
		}
	}

	// Tool choice
	if tc := options.GetString(opt.ToolChoiceKey); tc != "" {
		request.ToolChoice = tc
	}

	// Tools from toolkit
	if v, ok := options.Get(opt.ToolkitKey); ok {
		if tk, ok := v.(*tool.Toolkit); ok {
			tools, err := toolsFromToolkit(tk)
			if err != nil {
				return nil, err
			}
			if len(tools) > 0 {
				request.Tools = tools
			}
		}
	}

	return request, nil
}

// GenerateRequest builds a generate request from options without sending it.
// Useful for testing and debugging.
func GenerateRequest(model string, session *schema.Conversation, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return generateRequestFromOpts(model, session, options)
}

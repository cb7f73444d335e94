package chat

import (
	"context"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"

	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns all available models
func (c *Client) ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error) {
	return c.ModelCache.ListModels(ctx, opts, func(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error) {
		var response listModelsResponse

		if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models")); err != nil {
			return nil, err
		}

		// Convert to schema.Model
		result := make([]schema.Model, 0, len(response.Data))
		for _, m := range response.Data {
			result = append(result, m.toSchema())
		}

		return result, nil
	})
}

// GetModel returns a specific model by name
func (c *Client) GetModel(ctx context.Context, name string, opts ...opt.Opt) (*schema.Model, error) {
	return c.ModelCache.GetModel(ctx, name, func(ctx context.Context, name string) (*schema.Model, error) {
		var response model

		if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models", name)); err != nil {
			return nil, err
		}

		result := response.toSchema()
		return &result, nil
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// toSchema converts a wire model to schema.Model
func (m model) toSchema() schema.Model {
	return schema.Model{
		Name:    m.Id,
		Created: time.Unix(m.Created, 0),
		OwnedBy: m.OwnedBy,
	}
}

/*
Package modelcache caches model metadata fetched from the completions
API, so repeated lookups do not hit the network within the TTL.
*/
package modelcache

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"

	openai "github.com/zxss702/go-openai"
	opt "github.com/zxss702/go-openai/pkg/opt"
	schema "github.com/zxss702/go-openai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type entry struct {
	ts    time.Time
	model schema.Model
}

// ModelCache is a TTL cache of models, keyed by name. Safe for
// concurrent use.
type ModelCache struct {
	sync.Mutex
	ttl   time.Duration
	model map[string]entry
}

type GetModelFunc func(context.Context, string) (*schema.Model, error)
type ListModelsFunc func(context.Context, ...opt.Opt) ([]schema.Model, error)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewModelCache(ttl time.Duration, cap int) *ModelCache {
	self := new(ModelCache)

	// Set the TTL for each model
	if ttl > 0 {
		self.ttl = ttl
	}

	// Set model cache capacity
	self.model = make(map[string]entry, cap)

	// Return the model cache
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetModel returns a model by name, fetching through fn on a cache miss
// or an expired entry.
func (mc *ModelCache) GetModel(ctx context.Context, name string, fn GetModelFunc) (*schema.Model, error) {
	mc.Lock()
	defer mc.Unlock()

	// Cached model
	if cached, ok := mc.model[name]; ok {
		if time.Since(cached.ts) < mc.ttl {
			return types.Ptr(cached.model), nil
		}
		// Expired entry: prune before fetching
		delete(mc.model, name)
	}

	// Fetch model
	model, err := fn(ctx, name)
	if err != nil {
		// If the model no longer exists, ensure the cache is invalidated
		if errors.Is(err, openai.ErrNotFound) {
			delete(mc.model, name)
		}
		return nil, err
	}

	// Cache and return the model
	mc.model[model.Name] = entry{ts: time.Now(), model: types.Value(model)}
	return model, nil
}

// ListModels returns all models sorted by name, serving from the cache
// when every entry is still fresh.
func (mc *ModelCache) ListModels(ctx context.Context, opts []opt.Opt, fn ListModelsFunc) ([]schema.Model, error) {
	mc.Lock()
	defer mc.Unlock()

	// If we have a TTL and cached entries, return all non-expired models
	if mc.ttl > 0 && len(mc.model) > 0 {
		now := time.Now()
		cached := make([]schema.Model, 0, len(mc.model))
		for name, e := range mc.model {
			if now.Sub(e.ts) < mc.ttl {
				cached = append(cached, e.model)
			} else {
				// Prune expired entries
				delete(mc.model, name)
			}
		}
		if len(cached) > 0 {
			sort.Slice(cached, func(i, j int) bool { return cached[i].Name < cached[j].Name })
			return cached, nil
		}
	}

	// Fetch models
	models, err := fn(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Cache models
	now := time.Now()
	for _, model := range models {
		mc.model[model.Name] = entry{ts: now, model: model}
	}

	// Sort models by name
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })

	// Return sorted list of models
	return models, nil
}

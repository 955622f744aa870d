// Package invalidate notifies view caches that stored records changed.
// Invalidation is fire-and-forget: a lost notification means a brief
// staleness window, never a failed write.
package invalidate

import (
	"context"
	"sync"
)

// Invalidator publishes cache keys whose cached views must be dropped.
// Implementations log failures and never surface them to the caller.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// ListKey is the cache key of an entity's list view ("events").
func ListKey(entity string) string {
	return entity
}

// ItemKey is the cache key of one record's view ("events:<id>").
func ItemKey(entity, id string) string {
	return entity + ":" + id
}

// Noop drops every notification; used when no broker is configured.
type Noop struct{}

func (Noop) Invalidate(context.Context, ...string) {}

// Recorder collects invalidated keys for tests.
type Recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *Recorder) Invalidate(_ context.Context, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
}

func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

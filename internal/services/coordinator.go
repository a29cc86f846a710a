package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/influencehub/backend/internal/cache"
	"github.com/influencehub/backend/internal/events"
	"github.com/influencehub/backend/internal/notify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Notifier is the external notification sink.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// Coordinator keeps cached query results consistent with store writes:
// read-through caching, optimistic patches with rollback, and invalidation.
type Coordinator struct {
	cache     cache.Cache
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
	loads     singleflight.Group
}

type CoordinatorOption func(*Coordinator)

func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(c cache.Cache, publisher events.Publisher, log *zap.Logger, opts ...CoordinatorOption) *Coordinator {
	co := &Coordinator{cache: c, publisher: publisher, log: log, now: time.Now}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

func (co *Coordinator) Now() time.Time {
	return co.now()
}

// cached serves key from the cache while it is fresh, otherwise loads it
// and stores the result. Cache failures degrade to a direct load.
func cached[T any](ctx context.Context, co *Coordinator, key string, load func(context.Context) (T, error)) (T, error) {
	if e, ok, err := co.cache.Read(ctx, key); err != nil {
		co.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok && !e.Stale {
		var v T
		if err := json.Unmarshal(e.Value, &v); err == nil {
			return v, nil
		}
	}

	v, err, _ := co.loads.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		co.store(ctx, key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (co *Coordinator) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		co.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := co.cache.Write(ctx, key, data); err != nil {
		co.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// keysUnder expands prefixes to the cached keys beneath them.
func (co *Coordinator) keysUnder(ctx context.Context, prefixes ...string) []string {
	seen := map[string]bool{}
	var keys []string
	for _, p := range prefixes {
		found, err := co.cache.Keys(ctx, p)
		if err != nil {
			co.log.Warn("cache keys failed", zap.String("prefix", p), zap.Error(err))
			continue
		}
		for _, k := range found {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Patch rewrites a cached value. It reports false to leave the entry alone.
type Patch func(key string, raw []byte) ([]byte, bool)

// optimistic applies patch to every cached key, runs write, and restores
// the exact prior bytes if write fails. The write is detached from ctx
// cancellation: once issued it runs to completion.
func (co *Coordinator) optimistic(ctx context.Context, keys []string, patch Patch, write func(context.Context) error) error {
	snapshot := make(map[string][]byte, len(keys))
	for _, key := range keys {
		e, ok, err := co.cache.Read(ctx, key)
		if err != nil || !ok {
			continue
		}
		snapshot[key] = e.Value
	}

	for _, key := range keys {
		raw, ok := snapshot[key]
		if !ok {
			continue
		}
		if patched, changed := patch(key, raw); changed {
			if err := co.cache.Write(ctx, key, patched); err != nil {
				co.log.Warn("optimistic patch failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	err := write(context.WithoutCancel(ctx))
	if err == nil {
		return nil
	}

	for _, key := range keys {
		raw, ok := snapshot[key]
		if !ok {
			continue
		}
		if rerr := co.cache.Write(context.WithoutCancel(ctx), key, raw); rerr != nil {
			co.log.Error("cache rollback failed", zap.String("key", key), zap.Error(rerr))
		}
	}
	return err
}

// invalidate marks every prefix stale and tells live clients to refetch.
func (co *Coordinator) invalidate(ctx context.Context, owner string, prefixes ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, p := range prefixes {
		if err := co.cache.Invalidate(ctx, p); err != nil {
			co.log.Warn("cache invalidate failed", zap.String("prefix", p), zap.Error(err))
		}
	}
	co.publish(ctx, events.New(events.EventCacheInvalidated, owner, map[string]any{"prefixes": prefixes}))
}

func (co *Coordinator) publish(ctx context.Context, event events.Event) {
	if co.publisher == nil {
		return
	}
	if err := co.publisher.Publish(context.WithoutCancel(ctx), events.StreamActivity, event); err != nil {
		co.log.Warn("event publish failed", zap.String("type", event.Type), zap.Error(err))
	}
}

// patchJSON decodes raw as T, applies fn, and re-encodes when fn reports a change.
func patchJSON[T any](raw []byte, fn func(*T) bool) ([]byte, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	if !fn(&v) {
		return nil, false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return out, true
}

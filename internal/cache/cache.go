// Package cache is the read-through cache in front of the configuration
// use-cases. Writes purge the whole store.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/anyulbade/payment-config-service/internal/keys"
)

// Observer is told about every lookup; metrics.Metrics implements it.
type Observer interface {
	ObserveCache(hit bool)
}

type Cache struct {
	store    Store
	observer Observer
	flight   singleflight.Group

	// mu orders Purge against Set. gen counts purges so that a compute
	// started before a purge never stores its result after it.
	mu  sync.Mutex
	gen uint64
}

func New(store Store, observer Observer) *Cache {
	return &Cache{store: store, observer: observer}
}

func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.store.Purge()
}

func (c *Cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// setIfCurrent stores v only when no purge happened since gen was read.
func (c *Cache) setIfCurrent(gen uint64, key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.store.Set(key, v)
	}
}

func (c *Cache) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(hit)
	}
}

// GetOrCompute returns the cached value for key or stores the result of
// compute. Concurrent misses on the same key share one compute call unless a
// purge happened in between. Errors are not cached.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return compute(ctx)
	}

	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			c.observe(true)
			return typed, nil
		}
	}
	c.observe(false)

	gen := c.generation()
	v, err, _ := c.flight.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		res, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.setIfCurrent(gen, key, res)
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Key builds scope + ":" + method + ":" + the canonical JSON of args.
func Key(scope, method string, args ...any) string {
	if args == nil {
		args = []any{}
	}
	stable, err := keys.Stable(args)
	if err != nil {
		stable = fmt.Sprint(args...)
	}
	return scope + ":" + method + ":" + stable
}

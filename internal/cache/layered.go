package cache

import (
	"context"
	"time"
)

// Store is the byte-level contract both cache levels satisfy
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Layered reads L1 first and falls back to the remote store. Remote hits are
// copied into L1.
type Layered struct {
	l1     *Memory
	remote Store
	ttl    time.Duration
}

// NewLayered combines l1 and remote. remote may be nil for a memory-only cache.
func NewLayered(l1 *Memory, remote Store, ttl time.Duration) *Layered {
	return &Layered{l1: l1, remote: remote, ttl: ttl}
}

func (c *Layered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, _ := c.l1.Get(ctx, key); ok {
		return data, true, nil
	}

	if c.remote == nil {
		return nil, false, nil
	}

	data, ok, err := c.remote.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	_ = c.l1.Set(ctx, key, data, c.ttl)
	return data, true, nil
}

func (c *Layered) Set(ctx context.Context, key string, value []byte) error {
	_ = c.l1.Set(ctx, key, value, c.ttl)

	if c.remote == nil {
		return nil
	}
	return c.remote.Set(ctx, key, value, c.ttl)
}

// Clear empties both levels. The remote error, if any, is returned.
func (c *Layered) Clear(ctx context.Context) error {
	_ = c.l1.Clear(ctx)

	if c.remote == nil {
		return nil
	}
	return c.remote.Clear(ctx)
}

// Package cache keeps parsed sections close to the bot: an in-process L1 in
// front of a shared remote store.
package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Memory wraps a ristretto cache as the in-process L1.
type Memory struct {
	c *ristretto.Cache[string, []byte]
}

// NewMemory creates a ristretto-backed cache. maxCostBytes caps the total
// size of cached values in bytes.
func NewMemory(maxCostBytes int64) (*Memory, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: numCounters(maxCostBytes),
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Memory{c: c}, nil
}

// minCounters keeps tiny budgets valid for ristretto, which rejects zero
const minCounters = 1000

// numCounters tracks ~10x the expected items, assuming ~100 byte entries
func numCounters(maxCostBytes int64) int64 {
	return max(maxCostBytes/100*10, minCounters)
}

// Get retrieves a value from the cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a value with the given TTL. Zero TTL never expires.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear(_ context.Context) error {
	m.c.Clear()
	return nil
}

// Wait blocks until buffered writes are applied.
func (m *Memory) Wait() {
	m.c.Wait()
}

// Close shuts down the cache and releases resources.
func (m *Memory) Close() {
	m.c.Close()
}

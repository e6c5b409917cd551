// Package cache memoizes generate responses. Entries are keyed by the
// catalog fingerprint and the canonical request, so a changed catalog file
// never serves a stale plan. Every failure degrades to a miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is the byte-level backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Key derives the cache key for a request against a catalog.
func Key(prefix, fingerprint string, req any) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(body)
	return prefix + hex.EncodeToString(h.Sum(nil)), nil
}

// ResponseCache stores JSON values in a Store and logs backend failures
// instead of returning them.
type ResponseCache struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// New wraps store. A nil log discards failures.
func New(store Store, ttl time.Duration, log *zap.Logger) *ResponseCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResponseCache{store: store, ttl: ttl, log: log}
}

// Load decodes the entry for key into out and reports whether it was found.
func (c *ResponseCache) Load(ctx context.Context, key string, out any) bool {
	if c == nil || c.store == nil {
		return false
	}
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed; continuing uncached", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn("cache entry undecodable; ignoring", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save encodes v under key.
func (c *ResponseCache) Save(ctx context.Context, key string, v any) {
	if c == nil || c.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn("cache write failed; continuing uncached", zap.String("key", key), zap.Error(err))
	}
}

// Memory is an in-process Store used when no Redis URL is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	val     []byte
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.val...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memEntry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

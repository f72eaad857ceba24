// Package cache stores rendered board PDFs keyed by a content hash of the
// announcement payload, so resubmitting an unchanged form skips the
// rendering pipeline. A Redis-backed store is used when configured, with an
// in-memory store as the default for single-instance deployments.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a byte cache with TTL semantics.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte) error
}

// Key derives a cache key from any JSON-marshalable payload. Struct field
// order makes the encoding deterministic.
func Key(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload for cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type memoryItem struct {
	data      []byte
	createdAt time.Time
}

// maxMemoryEntries bounds the in-memory store. Rendered boards run to a few
// megabytes each, so the map must not grow with the number of distinct
// payloads ever submitted.
const maxMemoryEntries = 128

// Memory is an in-memory Store.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
}

// NewMemory creates an in-memory store whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
		ttl:   ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(item.createdAt) > m.ttl {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false
	}
	return item.data, true
}

func (m *Memory) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) >= maxMemoryEntries {
		m.evictLocked()
	}
	m.items[key] = memoryItem{data: data, createdAt: time.Now()}
	return nil
}

// evictLocked sweeps expired entries and, if the store is still full, drops
// the oldest entry. Callers must hold the write lock.
func (m *Memory) evictLocked() {
	now := time.Now()
	for key, item := range m.items {
		if now.Sub(item.createdAt) > m.ttl {
			delete(m.items, key)
		}
	}
	if len(m.items) < maxMemoryEntries {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, item := range m.items {
		if oldestKey == "" || item.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = item.createdAt
		}
	}
	delete(m.items, oldestKey)
}

// Redis is a Redis-backed Store.
type Redis struct {
	client  *redis.Client
	ttl     time.Duration
	keyBase string
}

// NewRedis connects to the Redis instance at url (redis://...) and verifies
// the connection before returning.
func NewRedis(ctx context.Context, url string, ttl time.Duration, keyBase string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl, keyBase: keyBase}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.keyBase+":"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.keyBase+":"+key, data, r.ttl).Err()
}

package availability

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"citaflow/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotCache stores availability snapshots keyed by (sede, modality, date).
// Writes are whole-entry replacements, so concurrent panels racing on the
// same key settle last-write-wins without corruption. Clear supports the
// logout/app-restart lifecycle.
type SlotCache interface {
	Get(ctx context.Context, key string) (*models.AvailabilitySnapshot, bool)
	Put(ctx context.Context, key string, snapshot *models.AvailabilitySnapshot)
	Clear(ctx context.Context)
}

// SnapshotKey builds the composite cache key. "|" never appears in sede ids,
// modality ids, ISO dates or HH:MM times, so the key is collision-free.
func SnapshotKey(sedeID, modalityID, date string) string {
	return strings.Join([]string{sedeID, modalityID, date}, "|")
}

// memorySlotCache is the default session-lifetime cache: a process-scoped map
// with no eviction.
type memorySlotCache struct {
	mu      sync.RWMutex
	entries map[string]models.AvailabilitySnapshot
}

// NewMemorySlotCache returns an in-process SlotCache.
func NewMemorySlotCache() SlotCache {
	return &memorySlotCache{entries: make(map[string]models.AvailabilitySnapshot)}
}

func (c *memorySlotCache) Get(_ context.Context, key string) (*models.AvailabilitySnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return &snapshot, true
}

func (c *memorySlotCache) Put(_ context.Context, key string, snapshot *models.AvailabilitySnapshot) {
	if snapshot == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *snapshot
}

func (c *memorySlotCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]models.AvailabilitySnapshot)
}

const redisSlotKeyPrefix = "slots:"

// redisSlotCache shares snapshots across instances through Redis, with an
// optional TTL as the staleness guard flagged for production hardening.
// Redis failures degrade to cache misses; availability data is refetchable.
type redisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSlotCache returns a Redis-backed SlotCache. A zero ttl keeps
// entries until Clear.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) SlotCache {
	return &redisSlotCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisSlotCache) Get(ctx context.Context, key string) (*models.AvailabilitySnapshot, bool) {
	data, err := c.client.Get(ctx, redisSlotKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("slot cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	var snapshot models.AvailabilitySnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		c.logger.Warn("slot cache entry corrupt, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &snapshot, true
}

func (c *redisSlotCache) Put(ctx context.Context, key string, snapshot *models.AvailabilitySnapshot) {
	if snapshot == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Error("failed to marshal snapshot for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisSlotKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("slot cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisSlotCache) Clear(ctx context.Context) {
	keys, err := c.client.Keys(ctx, redisSlotKeyPrefix+"*").Result()
	if err != nil {
		c.logger.Warn("slot cache clear failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

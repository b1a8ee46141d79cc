package board

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Source is where a cache pulls fresh records from when its snapshot is
// stale or absent.
type Source interface {
	FetchAll(ctx context.Context) ([]Record, error)
}

// SnapshotCache hands out the most recent snapshot within a freshness
// window and supports unconditional invalidation. There is no partial
// invalidation: the sheet is small and a full refresh is always
// correctness-safe.
type SnapshotCache interface {
	Get(ctx context.Context) (*Snapshot, error)
	Invalidate(ctx context.Context)
}

// Swapped out by tests that need a fixed clock.
var nowFunc = time.Now

// MemoryCache keeps the snapshot in process memory. The mutex is held
// across the fetch so concurrent requests never trigger duplicate
// sheet reads.
type MemoryCache struct {
	source Source
	ttl    time.Duration

	mu   sync.Mutex
	snap *Snapshot
}

func NewMemoryCache(source Source, ttl time.Duration) *MemoryCache {
	return &MemoryCache{source: source, ttl: ttl}
}

func (c *MemoryCache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := nowFunc()
	if c.snap != nil && now.Sub(c.snap.FetchedAt) < c.ttl {
		return c.snap, nil
	}

	records, err := c.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = &Snapshot{Records: records, FetchedAt: now}
	return c.snap, nil
}

func (c *MemoryCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

const snapshotKey = "tablero:snapshot"

// RedisCache stores the snapshot as JSON under a single key with a
// TTL, for deployments running more than one replica. Redis errors
// degrade to a direct fetch instead of failing the render.
type RedisCache struct {
	source Source
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(source Source, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{source: source, client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (*Snapshot, error) {
	if snap, ok := c.load(ctx); ok {
		return snap, nil
	}

	records, err := c.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Records: records, FetchedAt: nowFunc()}
	c.store(ctx, snap)
	return snap, nil
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		log.Warnf("Failed to invalidate snapshot cache: %v", err)
	}
}

func (c *RedisCache) load(ctx context.Context) (*Snapshot, bool) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warnf("Snapshot cache read failed, falling back to the sheet: %v", err)
		}
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt snapshot must not wedge the board.
		_ = c.client.Del(ctx, snapshotKey).Err()
		return nil, false
	}
	return &snap, true
}

func (c *RedisCache) store(ctx context.Context, snap *Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		log.Warnf("Snapshot cache write failed: %v", err)
	}
}

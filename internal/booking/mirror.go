package booking

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const snapshotCacheKey = "thesistrack:bookings:snapshot"

// Source is the live booking collection the mirror follows.
type Source interface {
	Snapshot(ctx context.Context) ([]Booking, error)
	Watch(ctx context.Context) (*mongo.ChangeStream, error)
}

// Cache persists the latest snapshot for an instant warm start. Backed by
// Redis in production; tests substitute an in-memory map.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return redisCache{client: client}
}

func (c redisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c redisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

// Mirror keeps the local ordered-by-arrival copy of the booking collection.
// The subscription loop is the only writer; each update replaces the slice
// atomically, so readers never observe a partial snapshot. Conflict checks run
// against this mirror, not a fresh server read; see the note in service.go.
type Mirror struct {
	source Source
	cache  Cache

	mu       sync.RWMutex
	bookings []Booking
}

func NewMirror(source Source, cache Cache) *Mirror {
	return &Mirror{source: source, cache: cache}
}

// Bookings returns a copy of the current snapshot in arrival order.
func (m *Mirror) Bookings() []Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Booking, len(m.bookings))
	copy(out, m.bookings)
	return out
}

func (m *Mirror) replace(snapshot []Booking) {
	m.mu.Lock()
	m.bookings = snapshot
	m.mu.Unlock()
}

// WarmStart seeds the mirror from the cached snapshot so the calendar renders
// before the first live read completes. Overwritten by the next fresh snapshot.
func (m *Mirror) WarmStart(ctx context.Context) {
	if m.cache == nil {
		return
	}
	raw, err := m.cache.Get(ctx, snapshotCacheKey)
	if err != nil || raw == "" {
		return
	}
	var cached []Booking
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Println("Discarding unreadable booking cache:", err)
		return
	}
	m.replace(cached)
}

// Refresh reads the full collection and replaces the mirror and the cache.
func (m *Mirror) Refresh(ctx context.Context) error {
	snapshot, err := m.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	m.replace(snapshot)
	if m.cache != nil {
		data, err := json.Marshal(snapshot)
		if err == nil {
			if err := m.cache.Set(ctx, snapshotCacheKey, string(data)); err != nil {
				log.Println("Failed to cache booking snapshot:", err)
			}
		}
	}
	return nil
}

// Run follows the change stream until ctx is done. Stream failures are logged
// and the subscription is re-established with a short backoff; the mirror
// keeps serving its last snapshot in the meantime.
func (m *Mirror) Run(ctx context.Context) {
	m.WarmStart(ctx)
	if err := m.Refresh(ctx); err != nil {
		log.Println("Initial booking snapshot failed:", err)
	}

	for {
		if ctx.Err() != nil {
			return
		}
		stream, err := m.source.Watch(ctx)
		if err != nil {
			log.Println("Booking change stream unavailable, retrying:", err)
			select {
			case <-time.After(5 * time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}
		for stream.Next(ctx) {
			if err := m.Refresh(ctx); err != nil {
				log.Println("Booking snapshot refresh failed:", err)
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Println("Booking change stream closed:", err)
		}
		stream.Close(context.Background())
	}
}

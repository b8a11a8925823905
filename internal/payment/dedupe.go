package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DedupeTTL is how long a processed webhook event id is remembered.
const DedupeTTL = 24 * time.Hour

// Deduplicator remembers which webhook events were already processed.
type Deduplicator interface {
	// FirstSeen records id and reports whether it was new.
	FirstSeen(ctx context.Context, id string) (bool, error)
	// Forget drops id so a redelivery is processed again.
	Forget(ctx context.Context, id string) error
}

// MemoryDeduplicator is used when no Redis is configured.
type MemoryDeduplicator struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryDeduplicator(ttl time.Duration) *MemoryDeduplicator {
	return &MemoryDeduplicator{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (d *MemoryDeduplicator) FirstSeen(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.seen {
		if now.After(exp) {
			delete(d.seen, k)
		}
	}
	if _, ok := d.seen[id]; ok {
		return false, nil
	}
	d.seen[id] = now.Add(d.ttl)
	return true, nil
}

func (d *MemoryDeduplicator) Forget(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
	return nil
}

// RedisDeduplicator shares seen ids between API replicas.
type RedisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduplicator(client *redis.Client, ttl time.Duration) *RedisDeduplicator {
	return &RedisDeduplicator{client: client, ttl: ttl}
}

func dedupeKey(id string) string {
	return fmt.Sprintf("fedapay_event:%s", id)
}

func (d *RedisDeduplicator) FirstSeen(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupeKey(id), time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event in redis: %w", err)
	}
	return ok, nil
}

func (d *RedisDeduplicator) Forget(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, dedupeKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to forget webhook event in redis: %w", err)
	}
	return nil
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenylist remembers revoked token ids until the token would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisTokenDenylist struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client, prefix: "workoutapp:revoked:"}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err()
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryTokenDenylist is used when no Redis is configured. Entries live only
// as long as the process.
type MemoryTokenDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{entries: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryTokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, until := range d.entries {
		if !until.After(now) {
			delete(d.entries, id)
		}
	}
	if expiresAt.After(now) {
		d.entries[tokenID] = expiresAt
	}
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.entries[tokenID]
	return ok && until.After(d.now()), nil
}

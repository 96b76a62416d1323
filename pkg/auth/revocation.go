package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records token ids (jti) that must be rejected before
// their natural expiry. Entries only need to live as long as the token
// would have.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "revoked:"

// RedisRevocationList keeps revoked token ids in Redis with a TTL, so the
// list works across processes and cleans itself up.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList creates a RevocationList on the given client.
func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// Revoke marks the token id revoked until its expiry.
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	return l.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := l.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryRevocationList is an in-process RevocationList for tests and
// single-instance deployments without Redis.
type MemoryRevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevocationList creates an empty in-memory list.
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{entries: make(map[string]time.Time)}
}

// Revoke marks the token id revoked until its expiry.
func (l *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token id has been revoked. Expired
// entries are pruned as they are seen.
func (l *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	until, ok := l.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(l.entries, jti)
		return false, nil
	}
	return true, nil
}

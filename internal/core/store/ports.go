package store

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the document store operations used by the feature repositories.
// It is a port that can be implemented by different providers; the shipped
// implementation is redis-backed.
type Store interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the specified TTL. TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist yet.
	// Returns true if the value was written, false if the key was already held.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// SAdd adds a member to the set stored at key.
	SAdd(ctx context.Context, key, member string) error

	// SRem removes a member from the set stored at key.
	SRem(ctx context.Context, key, member string) error

	// SMembers returns all members of the set stored at key.
	// An absent key yields an empty slice, not an error.
	SMembers(ctx context.Context, key string) ([]string, error)

	// HIncrBy applies all field deltas to the hash stored at key in a single
	// transactional pipeline.
	HIncrBy(ctx context.Context, key string, deltas map[string]int64) error

	// HGetAll returns the full hash stored at key. An absent key yields an
	// empty map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}

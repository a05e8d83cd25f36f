package state

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{namespace}:{key}".
// Default: "console:state".
func WithPrefix(prefix string) RedisOption {
	return func(b *RedisBackend) {
		b.prefix = prefix
	}
}

// WithTTL expires stored values after d. Zero (the default) keeps them forever.
func WithTTL(d time.Duration) RedisOption {
	return func(b *RedisBackend) {
		b.ttl = max(d, 0)
	}
}

// RedisBackend stores slot values in Redis.
// One backend is shared by the process; Namespace derives a per-browser view.
type RedisBackend struct {
	client    redis.UniversalClient
	prefix    string
	namespace string
	ttl       time.Duration
}

// NewRedisBackend creates a backend on an open client (see pkg/redis.Open).
func NewRedisBackend(client redis.UniversalClient, opts ...RedisOption) *RedisBackend {
	b := &RedisBackend{
		client: client,
		prefix: "console:state",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Namespace returns a view whose keys are isolated under ns,
// typically a per-browser identifier.
func (b *RedisBackend) Namespace(ns string) *RedisBackend {
	cp := *b
	cp.namespace = ns
	return &cp
}

// TTL returns the expiry applied on Save. Zero means no expiry.
func (b *RedisBackend) TTL() time.Duration {
	return b.ttl
}

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, data []byte) error {
	return b.client.Set(ctx, b.fullKey(key), data, b.ttl).Err()
}

func (b *RedisBackend) fullKey(key string) string {
	k := key
	if b.namespace != "" {
		k = b.namespace + ":" + k
	}
	if b.prefix != "" {
		k = b.prefix + ":" + k
	}
	return k
}

var _ Backend = (*RedisBackend)(nil)

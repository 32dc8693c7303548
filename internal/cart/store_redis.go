package cart

import (
	"context"
	"errors"

	pkgredis "github.com/smartshoplabs/smartshop-backend/pkg/redis"
)

// RedisStore keeps the cart blob in Redis, keyed under the shared
// namespace. Blobs never expire; the cart outlives the process.
type RedisStore struct {
	client *pkgredis.Client
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client *pkgredis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.GetBytes(ctx, key)
	if err != nil {
		if errors.Is(err, pkgredis.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, payload []byte) error {
	return s.client.Set(ctx, key, payload, 0)
}

// Ping satisfies the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

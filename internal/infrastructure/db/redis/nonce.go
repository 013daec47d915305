package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NonceStore keeps one-time OAuth state nonces in Redis.
// Key format: oauth:state:<nonce>
type NonceStore struct {
	client redis.Cmdable
}

func NewNonceStore(client redis.Cmdable) *NonceStore {
	return &NonceStore{client: client}
}

// Save records nonce as outstanding until ttl elapses.
func (s *NonceStore) Save(ctx context.Context, nonce string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(nonce), "1", ttl).Err(); err != nil {
		return fmt.Errorf("save nonce: %w", err)
	}
	return nil
}

// Consume deletes nonce and reports whether it was outstanding. DEL is
// atomic, so two callbacks racing on the same state cannot both succeed.
func (s *NonceStore) Consume(ctx context.Context, nonce string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(nonce)).Result()
	if err != nil {
		return false, fmt.Errorf("consume nonce: %w", err)
	}
	return n > 0, nil
}

func (s *NonceStore) key(nonce string) string {
	return "oauth:state:" + nonce
}

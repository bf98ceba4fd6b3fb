package submit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ TokenStore = (*RedisStore)(nil)

// RedisStore shares claims between several web instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, options *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(options)

	// Verify connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Claim(ctx context.Context, token string, ttl time.Duration) error {
	ok, err := r.client.SetNX(ctx, tokenKey(token), 1, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyClaimed
	}
	return nil
}

func (r *RedisStore) Release(ctx context.Context, token string) error {
	return r.client.Del(ctx, tokenKey(token)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func tokenKey(token string) string {
	return "gallery:submit:" + token
}

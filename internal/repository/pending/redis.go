// Package pending keeps a guest's buy-now selection across the sign-in
// redirect.
package pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const ttl = 30 * time.Minute

type Repository interface {
	Put(ctx context.Context, guestID string, raw []byte) error
	// Take returns and deletes the payload; nil when none is stored.
	Take(ctx context.Context, guestID string) ([]byte, error)
}

type redisRepo struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func key(guestID string) string {
	return fmt.Sprintf("pending:%s", guestID)
}

func (r *redisRepo) Put(ctx context.Context, guestID string, raw []byte) error {
	return r.client.Set(ctx, key(guestID), raw, ttl).Err()
}

func (r *redisRepo) Take(ctx context.Context, guestID string) ([]byte, error) {
	raw, err := r.client.GetDel(ctx, key(guestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return raw, err
}

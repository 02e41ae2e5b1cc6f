package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guestTTL bounds how long an abandoned guest cart survives.
const guestTTL = 30 * 24 * time.Hour

type redisGuestRepo struct {
	client *redis.Client
}

func NewRedisGuest(client *redis.Client) GuestRepository {
	return &redisGuestRepo{client: client}
}

func guestKey(guestID string) string {
	return fmt.Sprintf("cart:%s", guestID)
}

func (r *redisGuestRepo) Get(ctx context.Context, guestID string) ([]byte, error) {
	raw, err := r.client.Get(ctx, guestKey(guestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *redisGuestRepo) Put(ctx context.Context, guestID string, raw []byte) error {
	return r.client.Set(ctx, guestKey(guestID), raw, guestTTL).Err()
}

func (r *redisGuestRepo) Delete(ctx context.Context, guestID string) error {
	return r.client.Del(ctx, guestKey(guestID)).Err()
}

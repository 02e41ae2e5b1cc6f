package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Broker fans out remote cart writes to every live session of the same user.
type Broker interface {
	Publish(ctx context.Context, userID string, items []domain.CartLine) error
	// Subscribe delivers each published item array until stop is called or
	// ctx is done; the channel is closed afterwards.
	Subscribe(ctx context.Context, userID string) (updates <-chan []domain.CartLine, stop func(), err error)
}

type redisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, logger *zap.Logger) Broker {
	return &redisBroker{client: client, logger: logging.OrNop(logger)}
}

func channelName(userID string) string {
	return fmt.Sprintf("carts:%s", userID)
}

func (b *redisBroker) Publish(ctx context.Context, userID string, items []domain.CartLine) error {
	if items == nil {
		items = []domain.CartLine{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelName(userID), raw).Err()
}

func (b *redisBroker) Subscribe(ctx context.Context, userID string) (<-chan []domain.CartLine, func(), error) {
	ps := b.client.Subscribe(ctx, channelName(userID))
	// wait for the subscription confirmation so no publish is missed afterwards
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, err
	}

	out := make(chan []domain.CartLine, 1)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}

	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var items []domain.CartLine
				if err := json.Unmarshal([]byte(msg.Payload), &items); err != nil {
					b.logger.Warn("cart broker: drop undecodable update", zap.String("user_id", userID), zap.Error(err))
					continue
				}
				select {
				case out <- items:
				case <-done:
					return
				case <-ctx.Done():
					stop()
					return
				}
			}
		}
	}()
	return out, stop, nil
}

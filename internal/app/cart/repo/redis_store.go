package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
)

// DefaultCartTTL is how long an untouched cart survives in Redis.
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisStore keeps carts in Redis. Every Set also publishes the value on a
// per-key channel so that other instances can refresh their copy.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

var _ contracts.KVStore = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. Keys are namespaced with prefix.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisStore) key(k string) string     { return s.prefix + k }
func (s *RedisStore) channel(k string) string { return s.prefix + "events:" + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cart %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(key), value, s.ttl)
		pipe.Publish(ctx, s.channel(key), value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write cart %s: %w", key, err)
	}
	return nil
}

// Subscribe listens on the key's channel. The subscription is confirmed
// before Subscribe returns, so no write made afterwards is missed.
func (s *RedisStore) Subscribe(ctx context.Context, key string, fn func([]byte)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := s.client.Subscribe(ctx, s.channel(key))
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to cart %s: %w", key, err)
	}

	ch := sub.Channel()
	go func() {
		defer func() {
			if err := sub.Close(); err != nil {
				s.logger.Debug("cart subscription close failed", zap.String("cart_id", key), zap.Error(err))
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn([]byte(msg.Payload))
			}
		}
	}()

	return cancel, nil
}

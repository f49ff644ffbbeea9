package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 5

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to the configured Redis instance and pings it.
func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

// NewRedisStore stores session values in Redis. A ttl of zero keeps values
// until they are deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {

		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	if err := decode(key, data, value); err != nil {
		return false, err
	}

	return true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value any) error {

	data, err := encode(key, value)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil
}

// Update runs an optimistic WATCH/MULTI transaction and retries when another
// writer touched the key in between.
func (r *RedisStore) Update(ctx context.Context, key string, value any, fn func(found bool) error) error {

	txf := func(tx *redis.Tx) error {

		found := true

		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			found = false
			reset(value)
		case err != nil:
			return fmt.Errorf("failed to get key %s from redis: %w", key, err)
		default:
			if err := decode(key, data, value); err != nil {
				found = false
			}
		}

		if err := fn(found); err != nil {
			return err
		}

		payload, err := encode(key, value)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})

		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {

		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			slog.Debug("Redis update lost a race, retrying", slog.String("key", key), slog.Int("attempt", attempt))
			continue
		}

		return err
	}

	return fmt.Errorf("%w: key %s", ErrConflict, key)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/exploration/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const worldKeyPrefix = "world:"

// RedisStorage serves world documents stored as plain strings under
// "world:<name>". Authors publish them with PutWorldDocument.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage from a redis:// URL. It does not
// contact the server; use Ping or WaitForConnection for that.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// World document operations

func (r *RedisStorage) GetWorldDocument(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, worldKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("World not found", "name", name)
			return nil, fmt.Errorf("%w: %s", storage.ErrWorldNotFound, name)
		}
		r.logger.Error("Failed to load world", "name", name, "error", err)
		return nil, fmt.Errorf("failed to load world: %w", err)
	}
	return data, nil
}

// PutWorldDocument stores a world document under name without expiry.
func (r *RedisStorage) PutWorldDocument(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, worldKeyPrefix+name, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save world", "name", name, "error", err)
		return fmt.Errorf("failed to save world: %w", err)
	}
	r.logger.Info("World published", "name", name, "bytes", len(data))
	return nil
}

func (r *RedisStorage) ListWorlds(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, worldKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), worldKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan worlds", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

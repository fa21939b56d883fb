package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// RedisCache caches per-user listings (operations with legs, bankrolls)
// in Redis. The ledger engine never reads it; the service layer fills it
// on reads and drops a user's keys after every successful mutation.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration.
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 5 * time.Minute
}

// NewRedisCache creates a new Redis cache.
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func operationsKey(userID uuid.UUID) string { return fmt.Sprintf("user:%s:operations", userID) }
func bankrollsKey(userID uuid.UUID) string  { return fmt.Sprintf("user:%s:bankrolls", userID) }

// SetOperations caches a user's operation listing.
func (c *RedisCache) SetOperations(ctx context.Context, userID uuid.UUID, ops []models.Operation) error {
	return c.set(ctx, operationsKey(userID), ops)
}

// GetOperations retrieves a user's cached operation listing.
func (c *RedisCache) GetOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	var ops []models.Operation
	if err := c.get(ctx, operationsKey(userID), &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// SetBankrolls caches a user's bankroll listing.
func (c *RedisCache) SetBankrolls(ctx context.Context, userID uuid.UUID, bankrolls []models.Bankroll) error {
	return c.set(ctx, bankrollsKey(userID), bankrolls)
}

// GetBankrolls retrieves a user's cached bankroll listing.
func (c *RedisCache) GetBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error) {
	var bankrolls []models.Bankroll
	if err := c.get(ctx, bankrollsKey(userID), &bankrolls); err != nil {
		return nil, err
	}
	return bankrolls, nil
}

// InvalidateUser drops every cached listing for a user. Called after any
// mutation that may have changed balances or operations.
func (c *RedisCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, operationsKey(userID), bankrollsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	c.logger.Debug().
		Str("user_id", userID.String()).
		Msg("invalidated user listings")
	return nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached listing")
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string, out any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return fmt.Errorf("listing not found in cache")
	} else if err != nil {
		return fmt.Errorf("failed to get from Redis: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

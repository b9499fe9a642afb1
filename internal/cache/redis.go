package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/pkg/cache/redis"
)

type RedisSimulationCache struct {
	raw    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSimulationCache(client *redis.Client, prefix string, ttl time.Duration) *RedisSimulationCache {
	return &RedisSimulationCache{
		raw:    client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisSimulationCache) withPrefix(key string) string {
	return c.prefix + key
}

func (c *RedisSimulationCache) Get(ctx context.Context, key string) (*calculations.LoanSimulation, bool, error) {
	data, err := c.raw.Get(ctx, c.withPrefix(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read simulation: %w", err)
	}

	var sim calculations.LoanSimulation
	if err := json.Unmarshal(data, &sim); err != nil {
		return nil, false, fmt.Errorf("failed to decode simulation: %w", err)
	}
	return &sim, true, nil
}

func (c *RedisSimulationCache) Set(ctx context.Context, key string, sim *calculations.LoanSimulation) error {
	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to encode simulation: %w", err)
	}
	return c.raw.Set(ctx, c.withPrefix(key), data, c.ttl).Err()
}

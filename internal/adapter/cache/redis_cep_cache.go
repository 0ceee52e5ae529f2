package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

// RedisCEPCache stores resolved postal codes. Postal data changes rarely, so
// a long TTL is fine; a cold cache just means one extra upstream call.
type RedisCEPCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCEPCache(rdb *redis.Client, ttl time.Duration) *RedisCEPCache {
	return &RedisCEPCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCEPCache) Get(ctx context.Context, cep string) (*domain.Address, bool, error) {
	raw, err := c.rdb.Get(ctx, "cep:"+cep).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var a domain.Address
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

func (c *RedisCEPCache) Set(ctx context.Context, cep string, a *domain.Address) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "cep:"+cep, raw, c.ttl).Err()
}

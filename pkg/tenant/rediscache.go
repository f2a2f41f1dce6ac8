package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores tenant rows in Redis so lookups stay warm across
// processes and restarts. Errors are treated as cache misses; a broken
// cache degrades to direct store lookups, never to wrong data.
type redisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a Redis-backed cache on an established client.
// The prefix namespaces keys when the Redis instance is shared.
func NewRedisCache(client redis.UniversalClient, prefix string) Cache {
	if prefix == "" {
		prefix = "classlane:"
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(payload, &t); err != nil {
		// Corrupt entry; drop it so the next lookup repopulates.
		c.client.Del(ctx, c.prefix+key)
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	payload, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, payload, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

func (c *redisCache) Close() error {
	// The client is shared application-wide; its owner closes it.
	return nil
}

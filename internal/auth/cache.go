package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tasknest/api/internal/logging"
)

// CachedResolver is a read-through cache in front of a UserResolver.
// Redis failures fall through to the underlying resolver, so a cache
// outage degrades lookups instead of denying authentication. Accounts
// are never deleted, which keeps cached identities from going stale
// in a way that matters.
type CachedResolver struct {
	client *redis.Client
	next   UserResolver
	ttl    time.Duration
	logger *logging.Logger
}

func NewCachedResolver(client *redis.Client, next UserResolver, ttl time.Duration, logger *logging.Logger) *CachedResolver {
	return &CachedResolver{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

// getIdentityKey generates the Redis key for a cached identity
func getIdentityKey(id uuid.UUID) string {
	return fmt.Sprintf("identity:%s", id.String())
}

// ResolveUser returns the cached identity when present, otherwise asks
// the underlying resolver and caches the result with a TTL.
func (c *CachedResolver) ResolveUser(ctx context.Context, id uuid.UUID) (Identity, error) {
	key := getIdentityKey(id)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var identity Identity
		if err := json.Unmarshal([]byte(cached), &identity); err == nil {
			return identity, nil
		}
		// Corrupt entry; drop it and fall through to the resolver
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("identity cache read failed", "error", err.Error())
	}

	identity, err := c.next.ResolveUser(ctx, id)
	if err != nil {
		return Identity{}, err
	}

	payload, err := json.Marshal(identity)
	if err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("identity cache write failed", "error", err.Error())
		}
	}

	return identity, nil
}

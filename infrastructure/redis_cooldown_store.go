package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dahcoins/domain/entities"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const cooldownKeyPrefix = "dahcoins:cooldown"

// RedisCooldownStore keeps action cooldowns in Redis with a TTL equal to the remaining cooldown
type RedisCooldownStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisCooldownStore creates a new Redis-backed cooldown store
func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{
		client: client,
		now:    time.Now,
	}
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.WithField("addr", addr).Info("Connected to Redis")
	return client, nil
}

// GetExpiry returns when the cooldown ends, or nil if there is none
func (s *RedisCooldownStore) GetExpiry(ctx context.Context, username string, action entities.Action) (*time.Time, error) {
	value, err := s.client.Get(ctx, cooldownKey(username, action)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cooldown for %s/%s: %w", username, action, err)
	}

	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed cooldown value %q: %w", value, err)
	}

	expiresAt := time.UnixMilli(millis).UTC()
	return &expiresAt, nil
}

// SetExpiry stores the cooldown end; keys expire on their own once it passes
func (s *RedisCooldownStore) SetExpiry(ctx context.Context, username string, action entities.Action, expiresAt time.Time) error {
	key := cooldownKey(username, action)

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to clear cooldown for %s/%s: %w", username, action, err)
		}
		return nil
	}

	// Round up so the key never disappears before the cooldown ends
	ttl = ttl.Truncate(time.Millisecond) + time.Millisecond

	if err := s.client.Set(ctx, key, strconv.FormatInt(expiresAt.UnixMilli(), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cooldown for %s/%s: %w", username, action, err)
	}
	return nil
}

func cooldownKey(username string, action entities.Action) string {
	return fmt.Sprintf("%s:%s:%s", cooldownKeyPrefix, username, action)
}

package cache

import (
	"context"
	"delivery-zone-service/internal/adapters/codec"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "delivery:snapshot:"

var _ ports.DeliverySnapshotRepository = (*RedisSnapshotCache)(nil)

// RedisSnapshotCache caches a restaurant's profile and active zones under a
// single key, so a cached read never mixes data from two repository reads.
//
// Redis failures are logged and the call falls through to Next.
type RedisSnapshotCache struct {
	Client *redis.Client
	Next   ports.DeliverySnapshotRepository
	TTL    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, next ports.DeliverySnapshotRepository, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client, Next: next, TTL: ttl}
}

func snapshotKey(restaurantID string) string {
	return snapshotKeyPrefix + restaurantID
}

func (c *RedisSnapshotCache) GetDeliveryProfile(ctx context.Context, restaurantID string) (domain.RestaurantDeliveryProfile, error) {
	snap, err := c.GetDeliverySnapshot(ctx, restaurantID)
	if err != nil {
		return domain.RestaurantDeliveryProfile{}, err
	}
	return snap.Profile, nil
}

func (c *RedisSnapshotCache) ListActiveZones(ctx context.Context, restaurantID string) ([]domain.DeliveryZone, error) {
	snap, err := c.GetDeliverySnapshot(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return snap.Zones, nil
}

// Return the cached snapshot, loading and storing it on a miss.
// Lookup failures such as unknown restaurants are not cached.
func (c *RedisSnapshotCache) GetDeliverySnapshot(
	ctx context.Context,
	restaurantID string,
) (_ ports.DeliverySnapshot, err error) {
	defer obs.Time(ctx, "snapshot.cache.GetDeliverySnapshot")(&err)

	if c.Next == nil {
		return ports.DeliverySnapshot{}, errors.New("snapshot cache: next repository is nil")
	}

	key := snapshotKey(restaurantID)

	if c.Client != nil {
		raw, err := c.Client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			snap, decErr := codec.DecodeSnapshot(raw)
			if decErr == nil {
				return snap, nil
			}
			log.Printf("snapshot cache: decode key=%s err=%v", key, decErr)
		case !errors.Is(err, redis.Nil):
			log.Printf("snapshot cache: get key=%s err=%v", key, err)
		}
	}

	snap, err := c.Next.GetDeliverySnapshot(ctx, restaurantID)
	if err != nil {
		return ports.DeliverySnapshot{}, fmt.Errorf("snapshot cache: load: %w", err)
	}

	if c.Client != nil {
		raw, encErr := codec.EncodeSnapshot(snap)
		if encErr != nil {
			log.Printf("snapshot cache: encode key=%s err=%v", key, encErr)
			return snap, nil
		}
		if setErr := c.Client.Set(ctx, key, raw, c.TTL).Err(); setErr != nil {
			log.Printf("snapshot cache: set key=%s err=%v", key, setErr)
		}
	}

	return snap, nil
}

// Drop the cached snapshot of one restaurant.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, restaurantID string) (err error) {
	defer obs.Time(ctx, "snapshot.cache.Invalidate")(&err)

	if c.Client == nil {
		return nil
	}
	if err := c.Client.Del(ctx, snapshotKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("snapshot cache: invalidate %q: %w", restaurantID, err)
	}
	return nil
}

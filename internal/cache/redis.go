package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/walex4242/godheranca-storefront/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:     client,
		coordsTTL:  24 * time.Hour,
		addressTTL: 30 * 24 * time.Hour,
	}
}

// RedisCache implements CoordinateCache and AddressStore on one Redis
// connection.
type RedisCache struct {
	client     *redis.Client
	coordsTTL  time.Duration
	addressTTL time.Duration
}

func (r *RedisCache) GetCoordinates(ctx context.Context, address string) (*domain.GeoPoint, error) {
	data, err := r.client.Get(ctx, coordsKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var point domain.GeoPoint
	if err := json.Unmarshal(data, &point); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates failed: %w", err)
	}

	return &point, nil
}

func (r *RedisCache) SetCoordinates(ctx context.Context, address string, point domain.GeoPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("marshal coordinates failed: %w", err)
	}

	// Jitter spreads expiry so a burst of lookups does not refill at once.
	ttl := r.coordsTTL + time.Duration(rand.Intn(30))*time.Minute
	if err := r.client.Set(ctx, coordsKey(address), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) GetAddress(ctx context.Context, sessionID string) (string, error) {
	address, err := r.client.Get(ctx, addressKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return address, nil
}

func (r *RedisCache) SetAddress(ctx context.Context, sessionID, address string) error {
	if err := r.client.Set(ctx, addressKey(sessionID), address, r.addressTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func coordsKey(address string) string {
	return "geo:" + strings.ToLower(strings.TrimSpace(address))
}

func addressKey(sessionID string) string {
	return "address:" + sessionID
}

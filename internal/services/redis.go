package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habalhub/habal-backend/internal/models"
)

var RedisClient *redis.Client

const pricingCacheKey = "pricing:settings"
const pricingCacheTTL = 5 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CachePricingSettings stores the pricing singleton for quote reads.
func CachePricingSettings(ctx context.Context, pricing *models.PricingSettings) error {
	data, err := json.Marshal(pricing)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, pricingCacheKey, data, pricingCacheTTL).Err()
}

// GetCachedPricingSettings retrieves the cached pricing singleton. A cache
// miss returns redis.Nil and the caller falls back to the database.
func GetCachedPricingSettings(ctx context.Context) (*models.PricingSettings, error) {
	data, err := RedisClient.Get(ctx, pricingCacheKey).Result()
	if err != nil {
		return nil, err
	}

	var pricing models.PricingSettings
	if err := json.Unmarshal([]byte(data), &pricing); err != nil {
		return nil, err
	}
	return &pricing, nil
}

// InvalidatePricingSettings drops the cached row after an admin update.
func InvalidatePricingSettings(ctx context.Context) error {
	return RedisClient.Del(ctx, pricingCacheKey).Err()
}

// SetDriverAvailability mirrors a driver's availability flag
func SetDriverAvailability(ctx context.Context, driverUserID uint, isAvailable bool) error {
	key := fmt.Sprintf("driver:availability:%d", driverUserID)
	value := "false"
	if isAvailable {
		value = "true"
	}
	return RedisClient.Set(ctx, key, value, time.Hour).Err()
}

// GetDriverAvailability retrieves the mirrored availability flag
func GetDriverAvailability(ctx context.Context, driverUserID uint) (bool, error) {
	key := fmt.Sprintf("driver:availability:%d", driverUserID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result == "true", nil
}

// PublishRideUpdate publishes a ride status change to Redis pub/sub so
// other instances can fan it out to their websocket clients.
func PublishRideUpdate(ctx context.Context, rideID uint, status models.RideStatus) error {
	updateData := map[string]interface{}{
		"rideId":    rideID,
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	data, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "ride:updates", data).Err()
}

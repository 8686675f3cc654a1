package cache

import (
	"context"
	"encoding/json"
	"lms/config"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the global redis client; nil when redis is unreachable, in which
// case every read falls through to its loader.
var Client *redis.Client

// Connect initializes the redis client. The cache is best-effort: a failed
// ping only logs a warning and the app keeps serving from the database.
func Connect() {
	Client = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unavailable (%v). Serving without cache.", err)
		Client = nil
	}
}

// GetOrLoad reads a JSON value from redis into dest, or runs the loader and
// caches its result for ttl. Cache errors degrade to a plain loader call.
func GetOrLoad(ctx context.Context, key string, ttl time.Duration, dest interface{}, loader func() (interface{}, error)) error {
	if Client != nil {
		if raw, err := Client.Get(ctx, key).Bytes(); err == nil {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
			// corrupt entry, drop it and reload
			Client.Del(ctx, key)
		}
	}

	value, err := loader()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	if Client != nil {
		if err := Client.Set(ctx, key, raw, ttl).Err(); err != nil {
			log.Printf("Warning: failed to cache %s: %v", key, err)
		}
	}
	return nil
}

// Invalidate removes keys after a write so the next read reloads
func Invalidate(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Warning: failed to invalidate cache keys %v: %v", keys, err)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ctrl-sk/qr-gen-pro/models"

	"github.com/redis/go-redis/v9"
)

// Cached records expire so a record edited by another instance cannot stay
// stale forever.
const recordTTL = 24 * time.Hour

// RedisStore is a RecordCache on Redis, for deployments running more than
// one instance.
type RedisStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisStore initializes a new RedisStore instance.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // leave empty if no password
		DB:       db,
	})

	ctx := context.Background()
	// Ping Redis to ensure connectivity.
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{Client: rdb, Ctx: ctx}, nil
}

// Set stores a record in Redis.
func (r *RedisStore) Set(key string, value models.QRCode) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(r.Ctx, "record:"+key, data, recordTTL).Err()
}

// Get retrieves a record from Redis.
func (r *RedisStore) Get(key string) (models.QRCode, error) {
	var result models.QRCode
	data, err := r.Client.Get(r.Ctx, "record:"+key).Result()
	if err != nil {
		return result, err
	}
	err = json.Unmarshal([]byte(data), &result)
	return result, err
}

// Delete removes a record from Redis.
func (r *RedisStore) Delete(key string) error {
	return r.Client.Del(r.Ctx, "record:"+key).Err()
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.Client.Close()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Read-path cache. Optional: when no Redis address is configured every Get is
// a miss and Set/Delete are no-ops, so callers never branch on availability.

var rdb *redis.Client

const ttl = 10 * time.Minute

func Init(addr string) {
	if addr == "" {
		rdb = nil
		return
	}
	rdb = redis.NewClient(&redis.Options{Addr: addr})
}

func Set(ctx context.Context, key string, value interface{}) error {
	if rdb == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, raw, ttl).Err()
}

func Get(ctx context.Context, key string, out interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func Delete(ctx context.Context, key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key).Err()
}

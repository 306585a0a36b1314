package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueryCache is a nil-safe cache-aside wrapper over redis for the small,
// hot chart-bootstrap queries. Cache failures are never surfaced: a miss is
// returned and the database answers.
type QueryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQueryCache creates a query cache; a nil client disables caching.
func NewQueryCache(rdb *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{rdb: rdb, ttl: ttl}
}

func deviceListKey() string {
	return "devices:list"
}

func dateRangeKey(deviceID string) string {
	return "devices:" + deviceID + ":range"
}

// Get unmarshals a cached value into dest and reports whether it was found.
func (qc *QueryCache) Get(ctx context.Context, key string, dest any) bool {
	if qc == nil || qc.rdb == nil {
		return false
	}
	cached, err := qc.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

// Set stores value under key with the configured TTL.
func (qc *QueryCache) Set(ctx context.Context, key string, value any) {
	if qc == nil || qc.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	qc.rdb.Set(ctx, key, string(data), qc.ttl)
}

// InvalidateDevice drops the keys a successful upload for deviceID may
// have made stale.
func (qc *QueryCache) InvalidateDevice(ctx context.Context, deviceID string) {
	if qc == nil || qc.rdb == nil {
		return
	}
	qc.rdb.Del(ctx, deviceListKey(), dateRangeKey(deviceID))
}

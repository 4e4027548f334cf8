package store

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"
)

// Month aggregate cache. Keys are tracked in a concurrent set so a reseed
// can clear every month entry at once.
var (
	Cache          *ristretto.Cache
	reseedEpoch    atomic.Int64
	MonthCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

// CacheEpoch returns the current reseed epoch. Aggregate cache keys embed
// it, so a read that straddles a reseed repopulates a dead epoch's key
// instead of pinning pre-reseed data under a live one.
func CacheEpoch() int64 {
	return reseedEpoch.Load()
}

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SetMonthCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	MonthCacheKeys.Lock()
	MonthCacheKeys.m[cacheKey] = struct{}{}
	MonthCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetMonthCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func DelMonthCache(cacheKey string) {
	if Cache == nil {
		return
	}
	MonthCacheKeys.Lock()
	delete(MonthCacheKeys.m, cacheKey)
	MonthCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllMonthCaches() {
	reseedEpoch.Add(1)
	if Cache == nil {
		return
	}
	MonthCacheKeys.Lock()
	for key := range MonthCacheKeys.m {
		Cache.Del(key)
	}
	MonthCacheKeys.m = make(map[string]struct{})
	MonthCacheKeys.Unlock()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"time"

	"storeadmin/internal/caching"
)

// Cache key scheme, one namespace per entity kind:
//
//	storeadmin:<kind>:list:<filter-hash>
//	storeadmin:<kind>:detail:<id>
//
// Every mutation invalidates storeadmin:<kind>:list:* so all cached pages
// for that kind are refetched on next read; updates additionally drop the
// one detail key, deletes evict it outright.
const (
	listTTL   = 5 * time.Minute
	detailTTL = 15 * time.Minute
)

func listKey(kind string, filter any) string {
	data, err := json.Marshal(filter)
	if err != nil {
		data = []byte("{}")
	}
	h := fnv.New64a()
	h.Write(data)
	return fmt.Sprintf("storeadmin:%s:list:%x", kind, h.Sum64())
}

func listPattern(kind string) string {
	return fmt.Sprintf("storeadmin:%s:list:*", kind)
}

func detailKey(kind, id string) string {
	return fmt.Sprintf("storeadmin:%s:detail:%s", kind, id)
}

// Cache failures degrade to log lines; they never fail the operation.

func cacheSet(ctx context.Context, cache caching.CacheService, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		log.Printf("WARN: cache write failed for %s: %v", key, err)
	}
}

func cacheDelete(ctx context.Context, cache caching.CacheService, key string) {
	if err := cache.Delete(ctx, key); err != nil {
		log.Printf("WARN: cache evict failed for %s: %v", key, err)
	}
}

func invalidateLists(ctx context.Context, cache caching.CacheService, kind string) {
	if err := cache.Invalidate(ctx, listPattern(kind)); err != nil {
		log.Printf("WARN: failed to invalidate %s lists: %v", kind, err)
	}
}

// decodeList handles both response shapes the backend produces: a bare JSON
// array, or a {"data": [...], "meta": {...}} envelope.
func decodeList(raw json.RawMessage, envelope any, bare any) error {
	trimmed := raw
	for len(trimmed) > 0 {
		if trimmed[0] == ' ' || trimmed[0] == '\t' || trimmed[0] == '\n' || trimmed[0] == '\r' {
			trimmed = trimmed[1:]
			continue
		}
		break
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(raw, bare)
	}
	return json.Unmarshal(raw, envelope)
}

package networth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Summaries are cached under one hash keyed by viewing entity, so a single DEL
// invalidates every view at once.
const summaryCacheKey = "networth:summary"

const summaryCacheTTL = 5 * time.Minute

// ViewCache is a Redis-backed cache of materialized net-worth summaries. It is
// strictly an accelerator: a nil cache or an unreachable Redis degrades to
// recomputation, never to an error or a different result.
type ViewCache struct {
	Rdb *redis.Client
}

// Get returns the cached summary for a viewing entity, or false on any miss.
func (vc *ViewCache) Get(ctx context.Context, viewing string) (*Summary, bool) {
	if vc == nil || vc.Rdb == nil {
		return nil, false
	}
	b, err := vc.Rdb.HGet(ctx, summaryCacheKey, viewing).Bytes()
	if err != nil {
		return nil, false
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// Put stores a summary for a viewing entity. Errors are ignored; the cache is
// best-effort.
func (vc *ViewCache) Put(ctx context.Context, viewing string, s *Summary) {
	if vc == nil || vc.Rdb == nil || s == nil {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	vc.Rdb.HSet(ctx, summaryCacheKey, viewing, b)
	vc.Rdb.Expire(ctx, summaryCacheKey, summaryCacheTTL)
}

// Invalidate drops every cached summary. Called after any entity, asset or
// liability mutation.
func (vc *ViewCache) Invalidate(ctx context.Context) {
	if vc == nil || vc.Rdb == nil {
		return
	}
	vc.Rdb.Del(ctx, summaryCacheKey)
}

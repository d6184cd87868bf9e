// Package cache holds the tournament catalog cache. Only list summaries are
// cached; slot occupancy and balances are always read from the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slot-ledger/internal/model"

	"github.com/redis/go-redis/v9"
)

// TournamentCache caches tournament list summaries per status filter
type TournamentCache interface {
	GetList(ctx context.Context, status model.TournamentStatus) ([]model.TournamentSummary, bool)
	SetList(ctx context.Context, status model.TournamentStatus, list []model.TournamentSummary)
	Invalidate(ctx context.Context)
}

var listStatuses = []model.TournamentStatus{
	"",
	model.TournamentUpcoming,
	model.TournamentLive,
	model.TournamentCompleted,
	model.TournamentCancelled,
}

// RedisCache stores list summaries as JSON with a TTL. Errors are treated as
// misses.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) GetList(ctx context.Context, status model.TournamentStatus) ([]model.TournamentSummary, bool) {
	data, err := c.rdb.Get(ctx, listKey(status)).Bytes()
	if err != nil {
		return nil, false
	}
	var list []model.TournamentSummary
	if json.Unmarshal(data, &list) != nil {
		return nil, false
	}
	return list, true
}

func (c *RedisCache) SetList(ctx context.Context, status model.TournamentStatus, list []model.TournamentSummary) {
	if data, err := json.Marshal(list); err == nil {
		c.rdb.Set(ctx, listKey(status), data, c.ttl)
	}
}

// Invalidate drops every cached list; participant counts change on each
// booking.
func (c *RedisCache) Invalidate(ctx context.Context) {
	keys := make([]string, len(listStatuses))
	for i, s := range listStatuses {
		keys[i] = listKey(s)
	}
	c.rdb.Del(ctx, keys...)
}

func listKey(status model.TournamentStatus) string {
	if status == "" {
		return "tournaments:list:all"
	}
	return fmt.Sprintf("tournaments:list:%s", status)
}

// Noop never hits. Used when Redis is not configured.
type Noop struct{}

func (Noop) GetList(context.Context, model.TournamentStatus) ([]model.TournamentSummary, bool) {
	return nil, false
}
func (Noop) SetList(context.Context, model.TournamentStatus, []model.TournamentSummary) {}
func (Noop) Invalidate(context.Context)                                                 {}

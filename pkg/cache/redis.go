// Package cache provides the Redis-backed report cache. The cache is an
// optimization only: every function degrades to a no-op when Redis is not
// configured, and callers must treat a miss and an error identically.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

const trialBalanceTTL = 15 * time.Minute

// TrialBalanceCache caches compiled trial balances per tenant. Each tenant
// owns one hash keyed by the as-of date, so a posting invalidates every
// cached date for that tenant with a single DEL.
type TrialBalanceCache struct {
	client *redis.Client
}

// NewTrialBalanceCache creates a cache around an optional Redis client.
// A nil client yields a cache that never hits.
func NewTrialBalanceCache(client *redis.Client) *TrialBalanceCache {
	return &TrialBalanceCache{client: client}
}

func trialBalanceKey(tenantID string) string {
	return fmt.Sprintf("trial_balance:%s", tenantID)
}

// Get returns the cached trial balance for a tenant and as-of date, or nil on
// a miss.
func (c *TrialBalanceCache) Get(ctx context.Context, tenantID string, asOf time.Time) *domain.TrialBalance {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.HGet(ctx, trialBalanceKey(tenantID), asOf.Format("2006-01-02")).Result()
	if err != nil {
		return nil
	}
	var tb domain.TrialBalance
	if err := json.Unmarshal([]byte(raw), &tb); err != nil {
		return nil
	}
	return &tb
}

// Set caches a compiled trial balance. Errors are swallowed: the report was
// already compiled, a failed cache write must not fail the request.
func (c *TrialBalanceCache) Set(ctx context.Context, tb *domain.TrialBalance) {
	if c == nil || c.client == nil || tb == nil {
		return
	}
	raw, err := json.Marshal(tb)
	if err != nil {
		return
	}
	key := trialBalanceKey(tb.TenantID)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, tb.AsOf.Format("2006-01-02"), raw)
	pipe.Expire(ctx, key, trialBalanceTTL)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops every cached trial balance for a tenant. Called after any
// successful posting, since a new batch can shift any as-of date's totals.
func (c *TrialBalanceCache) Invalidate(ctx context.Context, tenantID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, trialBalanceKey(tenantID)).Err()
}

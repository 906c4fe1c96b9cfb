package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"transport_manager/internal/models"

	"github.com/go-redis/redis/v8"
)

const generationKey = "ledger:summary:gen"

// LedgerCache stores ledger summaries per filter. Summaries live under a
// generation number; Invalidate bumps it so every older key is ignored
// and left to expire.
type LedgerCache struct {
	client *Client
	ttl    time.Duration
}

func NewLedgerCache(client *Client, ttl time.Duration) *LedgerCache {
	return &LedgerCache{client: client, ttl: ttl}
}

// Get returns the cached summary for filter and the generation it looked
// under. A generation of -1 means the generation could not be read and
// Set will skip the write.
func (c *LedgerCache) Get(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		log.Printf("ledger cache: %v", err)
		return models.LedgerSummary{}, -1, false
	}
	val, err := c.client.rdb.Get(ctx, summaryKey(gen, filter)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ledger cache: get summary: %v", err)
		}
		return models.LedgerSummary{}, gen, false
	}

	var summary models.LedgerSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		log.Printf("ledger cache: failed to unmarshal summary: %v", err)
		return models.LedgerSummary{}, gen, false
	}
	return summary, gen, true
}

// Set stores summary under gen, the generation Get returned before the
// summary was computed. If a write has invalidated the cache since, the
// key belongs to a retired generation and is never read.
func (c *LedgerCache) Set(ctx context.Context, filter models.LedgerFilter, gen int64, summary models.LedgerSummary) {
	if gen < 0 {
		return
	}
	jsonData, err := json.Marshal(summary)
	if err != nil {
		log.Printf("ledger cache: failed to marshal summary: %v", err)
		return
	}
	if err := c.client.rdb.Set(ctx, summaryKey(gen, filter), jsonData, c.ttl).Err(); err != nil {
		log.Printf("ledger cache: set summary: %v", err)
	}
}

func (c *LedgerCache) Invalidate(ctx context.Context) {
	if err := c.client.rdb.Incr(ctx, generationKey).Err(); err != nil {
		log.Printf("ledger cache: invalidate: %v", err)
	}
}

func (c *LedgerCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.rdb.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get generation: %w", err)
	}
	return gen, nil
}

// summaryKey spells out every filter field so distinct filters never share
// a key.
func summaryKey(gen int64, f models.LedgerFilter) string {
	parts := []string{fmt.Sprintf("ledger:summary:%d", gen)}
	if f.Direction != nil {
		parts = append(parts, "dir="+string(*f.Direction))
	}
	if f.OwnerKind != nil {
		parts = append(parts, "kind="+string(*f.OwnerKind))
	}
	if f.OwnerID != nil {
		parts = append(parts, fmt.Sprintf("owner=%d", *f.OwnerID))
	}
	if f.From != nil {
		parts = append(parts, "from="+f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		parts = append(parts, "to="+f.To.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, ":")
}

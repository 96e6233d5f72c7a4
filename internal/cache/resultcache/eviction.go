package resultcache

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Gunvolt24/order_lookup/pkg/metrics"
)

type agedKey struct {
	key       string
	writtenAt int64
}

// EvictOverflow — удаляет самые старые записи пространства имён, пока их не станет не больше maxEntries.
// Ошибки хранилища только логируются.
func (c *Cache) EvictOverflow(ctx context.Context, maxEntries int) {
	if maxEntries < 0 {
		maxEntries = 0
	}

	keys, err := c.store.Keys(ctx, c.prefix)
	if err != nil {
		c.log.Warnf(ctx, "cache eviction skipped: list keys prefix=%s err=%v", c.prefix, err)
		metrics.CacheOps.WithLabelValues(metrics.OpEvictFailed).Inc()
		return
	}
	if len(keys) <= maxEntries {
		metrics.CacheSize.Set(float64(len(keys)))
		return
	}

	aged := make([]agedKey, 0, len(keys))
	for _, key := range keys {
		aged = append(aged, agedKey{key: key, writtenAt: c.writtenAt(ctx, key)})
	}
	sort.Slice(aged, func(i, j int) bool {
		if aged[i].writtenAt != aged[j].writtenAt {
			return aged[i].writtenAt < aged[j].writtenAt
		}
		return aged[i].key < aged[j].key
	})

	remaining := len(aged)
	for _, victim := range aged[:len(aged)-maxEntries] {
		if delErr := c.store.Delete(ctx, victim.key); delErr != nil {
			c.log.Warnf(ctx, "cache eviction failed key=%s err=%v", victim.key, delErr)
			metrics.CacheOps.WithLabelValues(metrics.OpEvictFailed).Inc()
			continue
		}
		remaining--
		metrics.CacheOps.WithLabelValues(metrics.OpEvicted).Inc()
		c.log.Debugf(ctx, "cache evicted key=%s written_at=%d", victim.key, victim.writtenAt)
	}
	metrics.CacheSize.Set(float64(remaining))
}

// writtenAt — время записи; нечитаемая запись получает 0 и вытесняется первой.
func (c *Cache) writtenAt(ctx context.Context, key string) int64 {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil || !found {
		return 0
	}
	var stamp struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return 0
	}
	return stamp.Timestamp
}

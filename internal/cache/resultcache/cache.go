package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/internal/ports"
	"github.com/Gunvolt24/order_lookup/pkg/metrics"
)

const (
	// DefaultTTL — срок свежести записи кэша.
	DefaultTTL = 15 * time.Minute
	// DefaultMaxEntries — глобальный лимит записей в пространстве имён кэша.
	DefaultMaxEntries = 5
)

// Проверка, что Cache удовлетворяет интерфейсу ResultCache.
var _ ports.ResultCache = (*Cache)(nil)

// Cache — кэш результатов поиска поверх KV-хранилища.
// Все записи лежат под префиксом domain.CacheKeyPrefix; лимит размера общий для всех ключей.
type Cache struct {
	store      ports.KVStore
	log        ports.Logger
	prefix     string
	maxEntries int
}

// New — конструктор. maxEntries <= 0 заменяется на DefaultMaxEntries.
func New(store ports.KVStore, log ports.Logger, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		store:      store,
		log:        log,
		prefix:     domain.CacheKeyPrefix,
		maxEntries: maxEntries,
	}
}

// IsFresh — см. domain.CacheEntry.FreshAt.
func IsFresh(entry domain.CacheEntry, now time.Time, ttl time.Duration) bool {
	return entry.FreshAt(now, ttl)
}

// Get — прочитать запись. Ошибка хранилища и повреждённое значение считаются промахом.
func (c *Cache) Get(ctx context.Context, key string) (domain.CacheEntry, bool) {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warnf(ctx, "cache read failed key=%s err=%v", key, err)
		metrics.CacheOps.WithLabelValues(metrics.OpMiss).Inc()
		return domain.CacheEntry{}, false
	}
	if !found {
		metrics.CacheOps.WithLabelValues(metrics.OpMiss).Inc()
		return domain.CacheEntry{}, false
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		c.log.Warnf(ctx, "cache entry corrupt key=%s err=%v (treated as miss)", key, err)
		metrics.CacheOps.WithLabelValues(metrics.OpCorrupt).Inc()
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Put — записать запись поверх предыдущей и подрезать кэш до лимита.
func (c *Cache) Put(ctx context.Context, key string, entry domain.CacheEntry) error {
	raw, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		return err
	}
	c.EvictOverflow(ctx, c.maxEntries)
	return nil
}

// ------вспомогательные функции------

func encodeEntry(entry domain.CacheEntry) ([]byte, error) {
	if entry.OrderIDs == nil {
		entry.OrderIDs = []string{}
	}
	if entry.Records == nil {
		entry.Records = map[string]domain.OrderRecord{}
	}
	return json.Marshal(entry)
}

func decodeEntry(raw []byte) (domain.CacheEntry, error) {
	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.CacheEntry{}, err
	}
	return entry, nil
}

package ports

import (
	"context"

	"github.com/Gunvolt24/order_lookup/internal/domain"
)

// ResultCache — кэш результатов поиска заказов с ограничением по размеру.
// Свежесть записи проверяет вызывающая сторона (resultcache.IsFresh).
type ResultCache interface {
	// Get — (entry, true) при наличии корректной записи; повреждённая запись считается промахом.
	Get(ctx context.Context, key string) (domain.CacheEntry, bool)

	// Put — перезаписать запись и выполнить EvictOverflow.
	// Ошибка возвращается только если не удалась основная запись.
	Put(ctx context.Context, key string, entry domain.CacheEntry) error

	// EvictOverflow — удалить самые старые записи, пока их не останется не больше maxEntries.
	EvictOverflow(ctx context.Context, maxEntries int)
}

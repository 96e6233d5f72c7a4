package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/order_lookup/internal/cache/resultcache"
	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/internal/ports"
	"github.com/Gunvolt24/order_lookup/pkg/metrics"
	"github.com/Gunvolt24/order_lookup/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

// Проверка, что OrderLookupService удовлетворяет интерфейсу ports.OrderLookupService.
var _ ports.OrderLookupService = (*OrderLookupService)(nil)

// OrderLookupService — поиск заказов по продукту и диапазону дат с кэшем результатов
// (без знаний о транспорте и о конкретном хранилище).
type OrderLookupService struct {
	cache  ports.ResultCache       // кэш результатов
	client ports.OrderSearchClient // внешний сервис поиска
	log    ports.Logger

	ttl time.Duration
	now func() time.Time

	// group — объединение одновременных промахов по одному ключу; nil, если выключено.
	group *singleflight.Group
}

// Option — функциональная опция сервиса.
type Option func(*OrderLookupService)

// WithClock — подменить источник времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *OrderLookupService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTTL — срок свежести записи; ttl <= 0 игнорируется.
func WithTTL(ttl time.Duration) Option {
	return func(s *OrderLookupService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDedup — одновременные промахи по одному ключу делят один вызов сервиса.
func WithDedup(enabled bool) Option {
	return func(s *OrderLookupService) {
		if enabled {
			s.group = &singleflight.Group{}
		} else {
			s.group = nil
		}
	}
}

// NewOrderLookupService — DI-конструктор.
func NewOrderLookupService(
	cache ports.ResultCache,
	client ports.OrderSearchClient,
	log ports.Logger,
	opts ...Option,
) *OrderLookupService {
	s := &OrderLookupService{
		cache:  cache,
		client: client,
		log:    log,
		ttl:    resultcache.DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch — результат поиска: свежая запись кэша или новый вызов order_find с записью в кэш.
// Некорректные даты заменяются на всю историю (domain.CanonicalRange).
// Ошибки: domain.ErrAPI (response_code != "100"), domain.ErrTransport (вызов не удался).
func (s *OrderLookupService) Fetch(
	ctx context.Context,
	productID int,
	startDate, endDate string,
) (domain.LookupResult, error) {
	start, end := domain.CanonicalRange(startDate, endDate)
	key := domain.CacheKey(productID, start, end)

	ctx, span := telemetry.Tracer().Start(ctx, "OrderLookupService.Fetch")
	defer span.End()
	span.SetAttributes(attribute.Int("product_id", productID), attribute.String("cache.key", key))

	if entry, found := s.cache.Get(ctx, key); found {
		if resultcache.IsFresh(entry, s.now(), s.ttl) {
			metrics.CacheOps.WithLabelValues(metrics.OpHit).Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			s.log.Debugf(ctx, "cache hit key=%s", key)
			return entry.Result(), nil
		}
		metrics.CacheOps.WithLabelValues(metrics.OpStale).Inc()
		s.log.Debugf(ctx, "cache stale key=%s written_at=%d", key, entry.WrittenAt)
	} else {
		s.log.Debugf(ctx, "cache miss key=%s", key)
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	q := ports.OrderSearchQuery{ProductID: productID, StartDate: start, EndDate: end}

	if s.group == nil {
		res, err := s.fetchAndStore(ctx, key, q)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return res, err
	}

	// Общий вызов выполняется с контекстом первого вызывающего.
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.fetchAndStore(ctx, key, q)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.LookupResult{}, err
	}
	res := v.(domain.LookupResult)
	if shared {
		s.log.Debugf(ctx, "order search call shared key=%s", key)
	}
	return res.Clone(), nil
}

// fetchAndStore — вызов order_find и запись успешного результата в кэш.
func (s *OrderLookupService) fetchAndStore(
	ctx context.Context,
	key string,
	q ports.OrderSearchQuery,
) (domain.LookupResult, error) {
	started := time.Now()
	resp, err := s.client.FindOrders(ctx, q)
	if err != nil {
		s.log.Errorf(ctx, "order search failed product_id=%d err=%v", q.ProductID, err)
		return domain.LookupResult{}, err
	}

	if resp.ResponseCode != domain.ResponseCodeOK {
		s.log.Warnf(ctx, "order search rejected product_id=%d response_code=%q", q.ProductID, resp.ResponseCode)
		return domain.LookupResult{}, domain.ErrAPI
	}

	res := domain.LookupResult{
		Count:    resp.TotalOrders,
		OrderIDs: resp.OrderIDs,
		Records:  resp.Records,
	}
	if res.OrderIDs == nil {
		res.OrderIDs = []string{}
	}
	if res.Records == nil {
		res.Records = map[string]domain.OrderRecord{}
	}

	if putErr := s.cache.Put(ctx, key, domain.NewCacheEntry(res, s.now())); putErr != nil {
		s.log.Warnf(ctx, "cache put failed key=%s err=%v", key, putErr)
	}

	s.log.Infof(ctx, "order search product_id=%d count=%d ids=%d took=%s",
		q.ProductID, res.Count, len(res.OrderIDs), time.Since(started))
	return res, nil
}

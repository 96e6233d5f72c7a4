package domain

import "time"

// CacheEntry — закэшированный результат поиска.
// Хранится в KV-хранилище как JSON; формат совместим с другими клиентами того же хранилища.
type CacheEntry struct {
	WrittenAt int64                  `json:"timestamp"` // unix millis
	Count     int                    `json:"count"`
	OrderIDs  []string               `json:"orderIDs"`
	Records   map[string]OrderRecord `json:"orderData"`
}

// NewCacheEntry — запись кэша для результата, полученного в момент now.
func NewCacheEntry(res LookupResult, now time.Time) CacheEntry {
	res = res.Clone()
	if res.OrderIDs == nil {
		res.OrderIDs = []string{}
	}
	if res.Records == nil {
		res.Records = map[string]OrderRecord{}
	}
	return CacheEntry{
		WrittenAt: now.UnixMilli(),
		Count:     res.Count,
		OrderIDs:  res.OrderIDs,
		Records:   res.Records,
	}
}

// Result — результат, восстановленный из записи кэша.
func (e CacheEntry) Result() LookupResult {
	res := LookupResult{Count: e.Count, OrderIDs: e.OrderIDs, Records: e.Records}
	if res.OrderIDs == nil {
		res.OrderIDs = []string{}
	}
	if res.Records == nil {
		res.Records = map[string]OrderRecord{}
	}
	return res
}

// FreshAt — запись свежая, если с момента записи прошло строго меньше ttl.
func (e CacheEntry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.WrittenAt < ttl.Milliseconds()
}

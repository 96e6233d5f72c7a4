package domain

import (
	"strconv"
	"strings"
)

// CacheKeyPrefix — пространство имён записей кэша в KV-хранилище.
const CacheKeyPrefix = "order_count_"

// CacheKey — ключ кэша для продукта и канонического диапазона дат (MM/DD/YYYY).
// Формат: order_count_<productID>_<start>_<end>.
func CacheKey(productID int, start, end string) string {
	var b strings.Builder
	b.Grow(len(CacheKeyPrefix) + 8 + len(start) + len(end) + 2)
	b.WriteString(CacheKeyPrefix)
	b.WriteString(strconv.Itoa(productID))
	b.WriteByte('_')
	b.WriteString(start)
	b.WriteByte('_')
	b.WriteString(end)
	return b.String()
}

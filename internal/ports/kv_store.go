package ports

import "context"

// KVStore — персистентное key-value хранилище, поверх которого живёт кэш результатов.
// Требования к реализации: потокобезопасность; Get для отсутствующего ключа — (nil, false, nil).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Keys — все ключи с заданным префиксом, порядок не гарантируется.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

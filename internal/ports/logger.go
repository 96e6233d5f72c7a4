package ports

import "context"

// Logger — минимальный контракт логгера для внешних слоёв.
// В контексте может лежать request_id (pkg/ctxmeta), реализация добавляет его в запись.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any) // Debugf — трассировка кэша и запросов.
	Infof(ctx context.Context, format string, args ...any)  // Infof — информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf — предупреждения.
	Errorf(ctx context.Context, format string, args ...any) // Errorf — ошибки.
}

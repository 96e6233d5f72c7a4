// Пакет ctxmeta — нейтральный слой для метаданных запроса, которые прокидываются
// через context.Context (request_id, product_id, trace_id).
// HTTP-слой, CLI и логгер зависят от этого пакета, но не друг от друга.
package ctxmeta

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyProductID ctxKey = "product_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithProductID — продукт, по которому идёт поиск заказов.
func WithProductID(ctx context.Context, productID int) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, KeyProductID, productID)
}

// ProductIDFromContext достаёт product_id из контекста.
func ProductIDFromContext(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(KeyProductID).(int)
	return v, ok
}

// TraceIDFromContext — trace_id активного спана.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SpanIDFromContext — span_id активного спана.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// Fields — все известные метаданные в виде пар ключ/значение для структурного логгера.
func Fields(ctx context.Context) []any {
	var out []any
	if id, ok := RequestIDFromContext(ctx); ok {
		out = append(out, string(KeyRequestID), id)
	}
	if pid, ok := ProductIDFromContext(ctx); ok {
		out = append(out, string(KeyProductID), strconv.Itoa(pid))
	}
	if id, ok := TraceIDFromContext(ctx); ok {
		out = append(out, "trace_id", id)
	}
	if id, ok := SpanIDFromContext(ctx); ok {
		out = append(out, "span_id", id)
	}
	return out
}

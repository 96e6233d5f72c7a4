package ports

import (
	"context"

	"github.com/Gunvolt24/order_lookup/internal/domain"
)

// OrderSearchQuery — параметры вызова order_find (даты уже в каноническом виде).
type OrderSearchQuery struct {
	ProductID int
	StartDate string
	EndDate   string
}

// OrderSearchClient — внешний сервис поиска заказов.
type OrderSearchClient interface {
	// FindOrders — ошибки транспорта оборачивают domain.ErrTransport;
	// response_code не проверяется, это делает вызывающая сторона.
	FindOrders(ctx context.Context, q OrderSearchQuery) (domain.SearchResponse, error)
}

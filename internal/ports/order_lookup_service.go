package ports

import (
	"context"

	"github.com/Gunvolt24/order_lookup/internal/domain"
)

// OrderLookupService — единственная операция, доступная внешним слоям (HTTP, CLI).
type OrderLookupService interface {
	Fetch(ctx context.Context, productID int, startDate, endDate string) (domain.LookupResult, error)
}

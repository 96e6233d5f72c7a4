package domain

import "sort"

// Значения по умолчанию для полей записи заказа, отсутствующих в ответе сервиса.
const (
	DefaultOrderTotal  = "0"
	DefaultOrderStatus = "unknown"
)

// OrderRecord — плоское представление одного заказа из order_find.
// Сумма хранится строкой, чтобы не терять точность при округлении.
type OrderRecord struct {
	OrderID          string `json:"order_id"`
	AcquisitionDate  string `json:"acquisition_date"`
	BillingFirstName string `json:"billing_first_name"`
	BillingLastName  string `json:"billing_last_name"`
	EmailAddress     string `json:"email_address"`
	OrderTotal       string `json:"order_total"`
	OrderStatus      string `json:"order_status"`
}

// NewOrderRecord — запись с дефолтами для всех полей, кроме идентификатора.
func NewOrderRecord(orderID string) OrderRecord {
	return OrderRecord{
		OrderID:     orderID,
		OrderTotal:  DefaultOrderTotal,
		OrderStatus: DefaultOrderStatus,
	}
}

// LookupResult — результат поиска заказов по продукту и диапазону дат.
// Все три поля всегда берутся из одного ответа сервиса или одной записи кэша.
type LookupResult struct {
	Count    int
	OrderIDs []string
	Records  map[string]OrderRecord
}

// OrderedRecords — записи в порядке OrderIDs; записи без id в OrderIDs идут в конце по возрастанию id.
func (r LookupResult) OrderedRecords() []OrderRecord {
	out := make([]OrderRecord, 0, len(r.Records))
	seen := make(map[string]struct{}, len(r.OrderIDs))

	for _, id := range r.OrderIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := r.Records[id]; ok {
			out = append(out, rec)
		}
	}

	rest := make([]string, 0)
	for id := range r.Records {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, r.Records[id])
	}
	return out
}

// Clone — глубокая копия результата.
func (r LookupResult) Clone() LookupResult {
	out := LookupResult{Count: r.Count}
	if r.OrderIDs != nil {
		out.OrderIDs = append([]string(nil), r.OrderIDs...)
	}
	if r.Records != nil {
		out.Records = make(map[string]OrderRecord, len(r.Records))
		for id, rec := range r.Records {
			out.Records[id] = rec
		}
	}
	return out
}

// SearchResponse — ответ order_find, уже нормализованный на границе клиента.
type SearchResponse struct {
	ResponseCode string
	TotalOrders  int
	OrderIDs     []string
	Records      map[string]OrderRecord
}

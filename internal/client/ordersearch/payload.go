package ordersearch

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/internal/ports"
)

// Фиксированные параметры запроса order_find.
const (
	scopeAll        = "all"
	returnOrderView = "order_view"
)

// findRequest — тело запроса order_find.
type findRequest struct {
	CampaignID string `json:"campaign_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ProductID  []int  `json:"product_id"`
	Criteria   string `json:"criteria"`
	SearchType string `json:"search_type"`
	ReturnType string `json:"return_type"`
}

func newFindRequest(q ports.OrderSearchQuery) findRequest {
	return findRequest{
		CampaignID: scopeAll,
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		StartTime:  "",
		EndTime:    "",
		ProductID:  []int{q.ProductID},
		Criteria:   scopeAll,
		SearchType: scopeAll,
		ReturnType: returnOrderView,
	}
}

// looseString — строковое поле ответа, которое сервис может прислать строкой, числом или null.
// Числа сохраняют исходную запись, всё остальное (null, bool, объекты) даёт пустую строку.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*s = ""
		return nil
	}
	switch {
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*s = looseString(b)
	default:
		*s = ""
	}
	return nil
}

// exactString — response_code: принимается только JSON-строка, без обрезки пробелов.
// Число, null и прочие типы дают пустую строку, которая не равна коду успеха.
type exactString string

func (s *exactString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = exactString(v)
	return nil
}

// rawOrder — запись заказа в том виде, в каком её отдаёт сервис; любое поле может отсутствовать.
type rawOrder struct {
	AcquisitionDate  looseString `json:"acquisition_date"`
	BillingFirstName looseString `json:"billing_first_name"`
	BillingLastName  looseString `json:"billing_last_name"`
	EmailAddress     looseString `json:"email_address"`
	OrderTotal       looseString `json:"order_total"`
	OrderStatus      looseString `json:"order_status"`
}

// rawResponse — ответ order_find. order_id и data разбираются отдельно,
// чтобы неожиданный тип не ломал разбор всего ответа.
type rawResponse struct {
	ResponseCode exactString     `json:"response_code"`
	TotalOrders  looseString     `json:"total_orders"`
	OrderIDs     json.RawMessage `json:"order_id"`
	Data         json.RawMessage `json:"data"`
}

// normalize — приводит ответ к domain.SearchResponse, подставляя дефолты вместо отсутствующих полей.
func (r rawResponse) normalize() domain.SearchResponse {
	return domain.SearchResponse{
		ResponseCode: string(r.ResponseCode),
		TotalOrders:  parseCount(string(r.TotalOrders)),
		OrderIDs:     parseOrderIDs(r.OrderIDs),
		Records:      parseRecords(r.Data),
	}
}

// parseCount — total_orders приходит строкой; некорректное или отрицательное значение даёт 0.
func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f >= math.MaxInt {
		return 0
	}
	return int(f)
}

func parseOrderIDs(raw json.RawMessage) []string {
	var ids []looseString
	if len(raw) == 0 || json.Unmarshal(raw, &ids) != nil {
		return []string{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// parseRecords — ключ итоговой карты всегда совпадает с ключом в data; значения не-объекты пропускаются.
func parseRecords(raw json.RawMessage) map[string]domain.OrderRecord {
	out := make(map[string]domain.OrderRecord)

	var data map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &data) != nil {
		return out
	}

	for id, value := range data {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] != '{' {
			continue
		}
		var ro rawOrder
		if err := json.Unmarshal(value, &ro); err != nil {
			continue
		}
		out[id] = ro.toRecord(id)
	}
	return out
}

func (o rawOrder) toRecord(id string) domain.OrderRecord {
	rec := domain.NewOrderRecord(id)
	rec.AcquisitionDate = string(o.AcquisitionDate)
	rec.BillingFirstName = string(o.BillingFirstName)
	rec.BillingLastName = string(o.BillingLastName)
	rec.EmailAddress = string(o.EmailAddress)
	if o.OrderTotal != "" {
		rec.OrderTotal = string(o.OrderTotal)
	}
	if o.OrderStatus != "" {
		rec.OrderStatus = string(o.OrderStatus)
	}
	return rec
}

package ordersearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/internal/ports"
	"github.com/Gunvolt24/order_lookup/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	findPath        = "order_find"
	maxResponseSize = 32 << 20
	defaultTimeout  = 30 * time.Second
)

// Проверка, что Client удовлетворяет интерфейсу OrderSearchClient.
var _ ports.OrderSearchClient = (*Client)(nil)

// Config — параметры подключения к сервису поиска заказов.
// Учётные данные передаются в Basic Auth как есть.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration

	// HTTPClient — необязательный клиент (тесты); по умолчанию создаётся с otelhttp-транспортом.
	HTTPClient *http.Client
}

// Client — HTTP-клиент операции order_find.
type Client struct {
	endpoint string
	username string
	password string
	http     *http.Client
}

// New — конструктор. BaseURL обязателен.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("order search: base url is required")
	}
	endpoint, err := url.JoinPath(cfg.BaseURL, findPath)
	if err != nil {
		return nil, fmt.Errorf("order search: invalid base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		endpoint: endpoint,
		username: cfg.Username,
		password: cfg.Password,
		http:     httpClient,
	}, nil
}

// FindOrders — POST order_find. Ответ нормализуется сразу при разборе;
// response_code не проверяется, это решает вызывающая сторона.
func (c *Client) FindOrders(ctx context.Context, q ports.OrderSearchQuery) (domain.SearchResponse, error) {
	body, err := json.Marshal(newFindRequest(q))
	if err != nil {
		return domain.SearchResponse{}, c.transportErr(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SearchResponse{}, c.transportErr(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.OrderSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.SearchResponse{}, c.transportErr(fmt.Errorf("post %s: %w", findPath, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Тело ошибки сервиса не разбираем, только освобождаем соединение.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return domain.SearchResponse{}, c.transportErr(fmt.Errorf("unexpected http status %d", resp.StatusCode))
	}

	var raw rawResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&raw); err != nil {
		return domain.SearchResponse{}, c.transportErr(fmt.Errorf("decode response: %w", err))
	}

	out := raw.normalize()
	if out.ResponseCode == domain.ResponseCodeOK {
		metrics.OrderSearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	} else {
		metrics.OrderSearchRequests.WithLabelValues(metrics.OutcomeAPIError).Inc()
	}
	return out, nil
}

func (c *Client) transportErr(err error) error {
	metrics.OrderSearchRequests.WithLabelValues(metrics.OutcomeTransportError).Inc()
	return fmt.Errorf("%w: %w", domain.ErrTransport, err)
}

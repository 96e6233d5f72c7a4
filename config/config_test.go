package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/order_lookup/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("LOOKUP_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 40*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 35*time.Second || c.HTTP.GracefulTimeout != 5*time.Second || c.HTTP.StaticDir != "./web" {
		t.Fatalf("HTTP handler defaults wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "order-lookup" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// OrderSearch
	if c.OrderSearch.BaseURL == "" || c.OrderSearch.Timeout != 30*time.Second {
		t.Fatalf("OrderSearch defaults wrong: %+v", c.OrderSearch)
	}

	// Cache
	if c.Cache.TTL != 15*time.Minute || c.Cache.MaxEntries != 5 || c.Cache.Dedup {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Store
	if c.Store.Backend != cfg.BackendMemory || c.Store.Memory.Limit != 1000 {
		t.Fatalf("Store defaults wrong: %+v", c.Store)
	}
	if c.Store.Valkey.Address != "valkey:6379" || c.Store.Valkey.DB != 0 {
		t.Fatalf("Store.Valkey defaults wrong: %+v", c.Store.Valkey)
	}
	if c.Store.Postgres.DSN == "" || c.Store.Postgres.MaxConns != 10 {
		t.Fatalf("Store.Postgres defaults wrong: %+v", c.Store.Postgres)
	}

	// Catalog
	if !slices.Equal(c.Catalog.Products, []int{2142, 2181, 2201}) {
		t.Fatalf("Catalog.Products: want [2142 2181 2201], got %v", c.Catalog.Products)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "LOOKUP_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_STATIC_DIR", "")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// OrderSearch
	t.Setenv(p+"_ORDER_SEARCH_BASE_URL", "https://api.example.com/v1")
	t.Setenv(p+"_ORDER_SEARCH_USERNAME", "user")
	t.Setenv(p+"_ORDER_SEARCH_PASSWORD", "secret")
	t.Setenv(p+"_ORDER_SEARCH_TIMEOUT", "7s")

	// Cache
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_CACHE_MAX_ENTRIES", "50")
	t.Setenv(p+"_CACHE_DEDUP", "true")

	// Store
	t.Setenv(p+"_STORE_BACKEND", "valkey")
	t.Setenv(p+"_STORE_MEMORY_LIMIT", "10")
	t.Setenv(p+"_STORE_VALKEY_ADDRESS", "cache:6380")
	t.Setenv(p+"_STORE_VALKEY_DB", "2")
	t.Setenv(p+"_STORE_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_STORE_POSTGRES_MAX_CONNS", "42")

	// Catalog
	t.Setenv(p+"_CATALOG_PRODUCTS", "1,2,3")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Проверки
	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond || c.HTTP.StaticDir != "" {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.OrderSearch.BaseURL != "https://api.example.com/v1" || c.OrderSearch.Username != "user" ||
		c.OrderSearch.Password != "secret" || c.OrderSearch.Timeout != 7*time.Second {
		t.Fatalf("OrderSearch overrides wrong: %+v", c.OrderSearch)
	}
	if c.Cache.TTL != 30*time.Minute || c.Cache.MaxEntries != 50 || !c.Cache.Dedup {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Store.Backend != cfg.BackendValkey || c.Store.Memory.Limit != 10 {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if c.Store.Valkey.Address != "cache:6380" || c.Store.Valkey.DB != 2 {
		t.Fatalf("Store.Valkey overrides wrong: %+v", c.Store.Valkey)
	}
	if c.Store.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" || c.Store.Postgres.MaxConns != 42 {
		t.Fatalf("Store.Postgres overrides wrong: %+v", c.Store.Postgres)
	}
	if !slices.Equal(c.Catalog.Products, []int{1, 2, 3}) {
		t.Fatalf("Catalog overrides wrong: %v", c.Catalog.Products)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"duration", "_CACHE_TTL", "not-a-duration"},
		{"int", "_CACHE_MAX_ENTRIES", "five"},
		{"product_list", "_CATALOG_PRODUCTS", "2142,abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const p = "LOOKUP_TEST_BAD"
			t.Setenv(p+tt.key, tt.value)

			if _, err := cfg.LoadWithPrefix(p); err == nil {
				t.Fatalf("expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}

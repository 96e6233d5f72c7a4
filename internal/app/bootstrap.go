package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/order_lookup/config"
	"github.com/Gunvolt24/order_lookup/internal/cache/resultcache"
	"github.com/Gunvolt24/order_lookup/internal/client/ordersearch"
	"github.com/Gunvolt24/order_lookup/internal/ports"
	"github.com/Gunvolt24/order_lookup/internal/store/memory"
	pgstore "github.com/Gunvolt24/order_lookup/internal/store/postgres"
	"github.com/Gunvolt24/order_lookup/internal/store/valkey"
	rest "github.com/Gunvolt24/order_lookup/internal/transport/http"
	"github.com/Gunvolt24/order_lookup/internal/usecase"
	"github.com/Gunvolt24/order_lookup/pkg/logger"
	"github.com/Gunvolt24/order_lookup/pkg/metrics"
	"github.com/Gunvolt24/order_lookup/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешний интерфейс (HTTP).
type App struct {
	Logger          ports.Logger  // логгер
	HTTPServer      *http.Server  // HTTP-сервер
	gracefulTimeout time.Duration // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// OpenStore — KV-хранилище под кэшем результатов по STORE_BACKEND.
// minEntries — ёмкость кэша: лимит memory-хранилища держится не меньше minEntries+1
// (Put сначала пишет, потом подрезает), чтобы LRU не вытеснял записи в обход кэша.
// Для postgres перед работой применяются миграции.
func OpenStore(ctx context.Context, cfg config.Store, minEntries int, log ports.Logger) (ports.KVStore, Cleanup, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", config.BackendMemory:
		limit := cfg.Memory.Limit
		if limit <= 0 {
			limit = memory.DefaultLimit
		}
		if limit <= minEntries {
			log.Warnf(ctx, "memory store limit=%d does not exceed cache max entries=%d, raising to %d",
				limit, minEntries, minEntries+1)
			limit = minEntries + 1
		}
		s, err := memory.NewStore(limit)
		if err != nil {
			return nil, func() {}, err
		}
		log.Infof(ctx, "cache store: memory limit=%d", limit)
		return s, func() {}, nil

	case config.BackendValkey:
		s, err := valkey.NewStore(ctx, valkey.Config{
			Address:  cfg.Valkey.Address,
			Username: cfg.Valkey.Username,
			Password: cfg.Valkey.Password,
			DB:       cfg.Valkey.DB,
		})
		if err != nil {
			return nil, func() {}, err
		}
		log.Infof(ctx, "cache store: valkey addr=%s db=%d", cfg.Valkey.Address, cfg.Valkey.DB)
		return s, s.Close, nil

	case config.BackendPostgres:
		applied, err := pgstore.Migrate(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, func() {}, fmt.Errorf("postgres migrations: %w", err)
		}
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, func() {}, err
		}
		log.Infof(ctx, "cache store: postgres max_conns=%d migrations_applied=%d", cfg.Postgres.MaxConns, applied)
		return pgstore.NewStore(pool), pool.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewLookupService — кэш, клиент order_find и сервис поиска поверх готового хранилища.
func NewLookupService(cfg *config.Config, store ports.KVStore, log ports.Logger) (*usecase.OrderLookupService, error) {
	client, err := ordersearch.New(ordersearch.Config{
		BaseURL:  cfg.OrderSearch.BaseURL,
		Username: cfg.OrderSearch.Username,
		Password: cfg.OrderSearch.Password,
		Timeout:  cfg.OrderSearch.Timeout,
	})
	if err != nil {
		return nil, err
	}

	cache := resultcache.New(store, log, cfg.Cache.MaxEntries)
	return usecase.NewOrderLookupService(cache, client, log,
		usecase.WithTTL(cfg.Cache.TTL),
		usecase.WithDedup(cfg.Cache.Dedup),
	), nil
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// KV-хранилище кэша.
	store, closeStore, err := OpenStore(ctx, cfg.Store, cfg.Cache.MaxEntries, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	lookupService, err := NewLookupService(cfg, store, logg)
	if err != nil {
		closeStore()
		_ = shutdownTrace(context.Background())
		_ = cleanupLogger()
		return nil, func() {}, err
	}
	logg.Infof(ctx, "result cache ttl=%s max_entries=%d dedup=%t",
		cfg.Cache.TTL, cfg.Cache.MaxEntries, cfg.Cache.Dedup)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(lookupService, logg, cfg.HTTP.HandlerTimeout, cfg.Catalog.Products)
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		closeStore()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или ошибки сервера.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", err)
		runErr = err
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/internal/ports"
	"github.com/Gunvolt24/order_lookup/pkg/ctxmeta"
	"github.com/Gunvolt24/order_lookup/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Пагинация списка заказов.
const (
	defaultOrdersLimit = 100
	maxOrdersLimit     = 500
)

// Тексты ошибок, которые видит клиент.
const (
	errTextBadID       = "invalid product id"
	errTextUnknown     = "product not found"
	errTextUnavailable = "order search unavailable"
	errTextInternal    = "internal server error"
)

type Handler struct {
	service        ports.OrderLookupService
	log            ports.Logger
	handlerTimeout time.Duration
	catalogue      []int
}

// NewHandler — catalogue ограничивает допустимые продукты; пустой список снимает ограничение.
func NewHandler(service ports.OrderLookupService, log ports.Logger, handlerTimeout time.Duration, catalogue []int) *Handler {
	return &Handler{
		service:        service,
		log:            log,
		handlerTimeout: handlerTimeout,
		catalogue:      slices.Clone(catalogue),
	}
}

// NewRouter — otelServiceName включает otelgin; пустое значение — без трейсинга.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/products", h.listProducts)
	r.GET("/products/:id/orders", h.productOrders)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// ordersResponse — ответ /products/:id/orders; даты — фактически использованный диапазон.
type ordersResponse struct {
	ProductID int                  `json:"product_id"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Count     int                  `json:"count"`
	OrderIDs  []string             `json:"order_ids"`
	Orders    []domain.OrderRecord `json:"orders"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

func (h *Handler) listProducts(c *gin.Context) {
	products := h.catalogue
	if products == nil {
		products = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) productOrders(c *gin.Context) {
	productID, err := httpx.ParseIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errTextBadID})
		return
	}
	if len(h.catalogue) > 0 && !slices.Contains(h.catalogue, productID) {
		c.JSON(http.StatusNotFound, gin.H{"error": errTextUnknown})
		return
	}

	limit, offset := httpx.ParseLimitOffset(c, defaultOrdersLimit, maxOrdersLimit)
	start, end := domain.CanonicalRange(c.Query("start"), c.Query("end"))

	ctx := ctxmeta.WithProductID(c.Request.Context(), productID)
	if h.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.handlerTimeout)
		defer cancel()
	}

	res, err := h.service.Fetch(ctx, productID, start, end)
	if err != nil {
		h.writeFetchError(c, ctx, err)
		return
	}

	orderIDs := res.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}

	c.JSON(http.StatusOK, ordersResponse{
		ProductID: productID,
		StartDate: start,
		EndDate:   end,
		Count:     res.Count,
		OrderIDs:  orderIDs,
		Orders:    httpx.Page(res.OrderedRecords(), limit, offset),
		Limit:     limit,
		Offset:    offset,
	})
}

func (h *Handler) writeFetchError(c *gin.Context, ctx context.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAPI):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrAPI.Error()})
	case errors.Is(err, domain.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": errTextUnavailable})
	default:
		h.log.Errorf(ctx, "Fetch failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errTextInternal})
	}
}

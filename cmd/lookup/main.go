package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/order_lookup/config"
	"github.com/Gunvolt24/order_lookup/internal/app"
	"github.com/Gunvolt24/order_lookup/internal/domain"
	"github.com/Gunvolt24/order_lookup/pkg/ctxmeta"
	"github.com/Gunvolt24/order_lookup/pkg/logger"
	"github.com/joho/godotenv"
)

// output — результат поиска в том виде, в каком его печатает CLI.
type output struct {
	ProductID int                  `json:"product_id"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Count     int                  `json:"count"`
	OrderIDs  []string             `json:"order_ids"`
	Orders    []domain.OrderRecord `json:"orders"`
}

// CLI-приложение: один поиск заказов через тот же сервис и кэш, что и HTTP.
func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	productID := fs.Int("product", 0, "product id (required)")
	start := fs.String("start", "", "start date: YYYY-MM-DD or MM/DD/YYYY; empty means full history")
	end := fs.String("end", "", "end date: YYYY-MM-DD or MM/DD/YYYY; empty means full history")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *productID <= 0 {
		fmt.Fprintln(stderr, "lookup: -product is required and must be positive")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "lookup: config: %v\n", err)
		return 1
	}

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(stderr, "lookup: logger: %v\n", err)
		return 1
	}
	defer func() { _ = cleanupLogger() }()

	store, closeStore, err := app.OpenStore(ctx, cfg.Store, cfg.Cache.MaxEntries, logg)
	if err != nil {
		fmt.Fprintf(stderr, "lookup: store: %v\n", err)
		return 1
	}
	defer closeStore()

	svc, err := app.NewLookupService(&cfg, store, logg)
	if err != nil {
		fmt.Fprintf(stderr, "lookup: %v\n", err)
		return 1
	}

	ctx = ctxmeta.WithProductID(ctx, *productID)
	startDate, endDate := domain.CanonicalRange(*start, *end)

	res, err := svc.Fetch(ctx, *productID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrAPI) {
			fmt.Fprintln(stderr, domain.ErrAPI.Error())
		} else {
			fmt.Fprintf(stderr, "lookup: %v\n", err)
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		ProductID: *productID,
		StartDate: startDate,
		EndDate:   endDate,
		Count:     res.Count,
		OrderIDs:  res.OrderIDs,
		Orders:    res.OrderedRecords(),
	}); err != nil {
		fmt.Fprintf(stderr, "lookup: write output: %v\n", err)
		return 1
	}
	return 0
}

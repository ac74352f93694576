package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gensol-dev/storefront/internal/analytics"
	"github.com/gensol-dev/storefront/internal/cart"
	"github.com/gensol-dev/storefront/internal/catalog"
	"github.com/gensol-dev/storefront/internal/checkout"
	"github.com/gensol-dev/storefront/internal/orderhook"
	ordersqlite "github.com/gensol-dev/storefront/internal/orderlog/sqlite"
	"github.com/gensol-dev/storefront/internal/payment"
	"github.com/gensol-dev/storefront/internal/pkg/i18n"
	"github.com/gensol-dev/storefront/internal/pkg/telemetry"
	"github.com/gensol-dev/storefront/internal/storage"
	"github.com/gensol-dev/storefront/internal/storefront/httpx"
	"github.com/gensol-dev/storefront/internal/tenant"
)

func main() {
	telemetry.InitLogger()
	ctx := context.Background()

	shutdown, err := telemetry.SetupTracer(ctx, "storefront")
	if err != nil {
		log.Fatalf("tracer setup failed: %v", err)
	}
	defer shutdown(context.Background())

	httpAddr := getEnv("HTTP_ADDR", ":8080")

	cat, err := catalog.Load(getEnv("CATALOG_PATH", "./data/catalog.json"))
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	tn := tenant.Tenant{
		ID:          getEnv("TENANT_ID", "demo"),
		Slug:        getEnv("TENANT_SLUG", "demo"),
		Phone:       os.Getenv("TENANT_PHONE"),
		Locale:      getEnv("TENANT_LOCALE", "en"),
		Mercadopago: os.Getenv("TENANT_MERCADOPAGO") == "true",
		Hook:        os.Getenv("TENANT_HOOK_URL"),
		OrderHook:   os.Getenv("ORDER_HOOK_URL"),
	}

	var store storage.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		store = storage.NewRedis(redisAddr, "storefront")
	} else {
		store = storage.NewMemory()
	}

	prices := i18n.NewPriceFormatter(i18n.Locale(tn.Locale))
	events := analytics.NewSlogLogger(slog.Default())

	cartSvc := cart.NewService(cat, store, "cartItems:"+tn.ID, events, slog.Default())
	cartSvc.Hydrate(ctx)

	var payClient *payment.Client
	if u := os.Getenv("PAYMENT_API_URL"); u != "" {
		payClient = payment.NewClient(u)
	}

	var hookClient *orderhook.Client
	if tn.OrderHook != "" {
		hookClient = orderhook.NewClient(tn.OrderHook)
	}

	orders, err := ordersqlite.Open(getEnv("ORDERS_DB_PATH", "./data/orders.db"))
	if err != nil {
		log.Fatalf("order log open failed: %v", err)
	}
	defer orders.Close()

	checkoutSvc := checkout.NewService(tn, prices, payClient, hookClient, events, slog.Default())

	handler := httpx.NewHandler(cartSvc, checkoutSvc, cat, prices, orders)
	router := httpx.NewRouter(handler)

	log.Printf("storefront running on %s", httpAddr)
	if err := http.ListenAndServe(httpAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

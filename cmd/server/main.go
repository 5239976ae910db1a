package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/restomate/resto-admin/internal/auth"
	"github.com/restomate/resto-admin/internal/catalog"
	"github.com/restomate/resto-admin/internal/couriers"
	"github.com/restomate/resto-admin/internal/customers"
	"github.com/restomate/resto-admin/internal/messaging"
	"github.com/restomate/resto-admin/internal/orders"
	"github.com/restomate/resto-admin/internal/reports"
	"github.com/restomate/resto-admin/internal/telemetry"
)

const (
	serviceName    = "resto-admin"
	serviceVersion = "0.1.0"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to init tracer provider", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to init meter provider", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(context.Background()) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenPostgres(ctx, postgresURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	var producer *messaging.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, messaging.TopicOrderPlaced)
		defer func() { _ = producer.Close() }()
	}

	authHandler := auth.NewHandler(auth.NewUserRepository(db), logger)
	customersHandler := customers.NewHandler(customers.NewCustomerRepository(db), logger)
	catalogHandler := catalog.NewHandler(catalog.NewCatalogRepository(db), logger)
	couriersHandler := couriers.NewHandler(couriers.NewCourierRepository(db), logger)
	reportsHandler := reports.NewHandler(reports.NewReportRepository(db), logger)

	ordersHandler, err := orders.NewHandler(orders.NewOrderRepository(db), producer, logger)
	if err != nil {
		logger.Error("failed to create orders handler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}

	route("POST /api/auth/register", authHandler.HandleRegister)
	route("POST /api/auth/login", authHandler.HandleLogin)

	route("GET /api/customers", customersHandler.HandleList)
	route("GET /api/customers/search", customersHandler.HandleSearch)
	route("POST /api/customers", customersHandler.HandleCreate)
	route("PUT /api/customers/{id}", customersHandler.HandleUpdate)
	route("DELETE /api/customers/{id}", customersHandler.HandleDelete)
	route("GET /api/customers/{id}/history", ordersHandler.HandleHistory)

	route("GET /api/restaurants", catalogHandler.HandleRestaurants)
	route("GET /api/areas", catalogHandler.HandleAreas)
	route("GET /api/menu/{restaurantId}", catalogHandler.HandleMenu)
	route("POST /api/menu", catalogHandler.HandleCreateMenuItem)
	route("DELETE /api/menu/{id}", catalogHandler.HandleDeleteMenuItem)

	route("GET /api/delivery", couriersHandler.HandleList)
	route("GET /api/delivery/available", couriersHandler.HandleAvailable)
	route("PUT /api/delivery/{id}/availability", couriersHandler.HandleSetAvailability)

	route("POST /api/orders", ordersHandler.HandlePlace)
	route("GET /api/orders", ordersHandler.HandleList)
	route("PUT /api/orders/{id}/status", ordersHandler.HandleUpdateStatus)

	route("GET /api/reports/dashboard", reportsHandler.HandleDashboard)
	route("GET /api/export/json", reportsHandler.HandleExportJSON)
	route("GET /api/export/csv", reportsHandler.HandleExportCSV)

	mux.Handle("GET /metrics", metricsHandler)

	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "public"
	}
	if info, err := os.Stat(publicDir); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(publicDir)))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "server",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting admin server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

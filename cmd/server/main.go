package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrajkumar21/ecommerce/internal/config"
	httpdelivery "github.com/mrajkumar21/ecommerce/internal/delivery/http"
	"github.com/mrajkumar21/ecommerce/internal/messaging"
	"github.com/mrajkumar21/ecommerce/internal/messaging/kafka"
	"github.com/mrajkumar21/ecommerce/internal/metrics"
	"github.com/mrajkumar21/ecommerce/internal/repository/postgres"
	"github.com/mrajkumar21/ecommerce/internal/service"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg := config.Load()

	// --- Database ---
	db, err := postgres.InitDB(cfg.DSN())
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// --- Messaging ---
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers)
		slog.Info("Kafka event publishing enabled", "brokers", cfg.KafkaBrokers)
	}

	// --- Services ---
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	txRunner := postgres.NewTxRunner(db)

	catalogSvc := service.NewCatalogService(productRepo, txRunner, publisher)
	orderSvc := service.NewOrderService(orderRepo, txRunner, publisher)

	// --- HTTP API ---
	serverMetrics := metrics.NewServerMetrics("server")
	handler := httpdelivery.NewHandler(catalogSvc, orderSvc, serverMetrics)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpdelivery.EnableCORS(mux),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")
	httpServer.Shutdown(context.Background())
}

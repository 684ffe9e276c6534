package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"order-fulfillment/internal/config"
	"order-fulfillment/internal/orders"
	orderhttp "order-fulfillment/internal/orders/http"
	"order-fulfillment/internal/orders/messaging"
	"order-fulfillment/internal/orders/processor"
	"order-fulfillment/internal/orders/repository"
	"order-fulfillment/internal/orders/strategy"

	_ "order-fulfillment/docs"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	metricProcessedTotal     = "order_products_processed_total"
	metricStockUpdatesTotal  = "order_stock_updates_total"
	metricNotificationsTotal = "order_notifications_sent_total"
	migrateSourcePrefix      = "file://"
	postgresDriverName       = "postgres"
)

// @title        Order Fulfillment API
// @version      1.0
// @description  Fulfills orders against the product catalog and emits customer notifications.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadFulfillment()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open(postgresDriverName, cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	rabbitConn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("connect rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitConn.Close()

	notifier, err := messaging.NewRabbitNotifier(rabbitConn, orders.NotificationsQueue)
	if err != nil {
		logger.Error("init notifier", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()

	processedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricProcessedTotal,
		Help: "Total number of order products processed",
	})
	stockUpdatesCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricStockUpdatesTotal,
		Help: "Total number of stock updates applied",
	})
	notificationsCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricNotificationsTotal,
		Help: "Total number of customer notifications sent",
	})
	prometheus.MustRegister(processedCounter, stockUpdatesCounter, notificationsCounter)

	repo := repository.NewPostgres(db)
	selector := strategy.NewSelector(notifier)
	proc := processor.New(repo, selector, logger, processedCounter, stockUpdatesCounter, notificationsCounter)
	handler := orderhttp.NewHandler(proc, repo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(orderhttp.RequestIDMiddleware())
	router.Use(orderhttp.AccessLogMiddleware(logger))
	orderhttp.RegisterRoutes(router, handler, repo)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fulfillment service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("fulfillment service stopped")
}

func runMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New(migrateSourcePrefix+migrationsPath, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

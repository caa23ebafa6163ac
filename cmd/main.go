package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipment-tracker/internal/config"
	"shipment-tracker/internal/infrastructure/broker"
	"shipment-tracker/internal/infrastructure/database/postgres"
	"shipment-tracker/internal/infrastructure/fluentcart"
	"shipment-tracker/internal/logger"
	"shipment-tracker/internal/notification"
	"shipment-tracker/internal/routes"
	"shipment-tracker/internal/usecase/shipment"
	"shipment-tracker/internal/worker"
	"shipment-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env, cfg.Server.LogDir); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	gateway := fluentcart.NewClient(&cfg.FluentCart)
	if !gateway.Available() {
		logger.Warn("FluentCart integration inactive, import and sync endpoints will refuse requests")
	}

	var notifier notification.Notifier = notification.Noop{}
	if cfg.SMTP.Host != "" {
		notifier = notification.NewMailer(&cfg.SMTP)
	}

	var publisher shipment.EventPublisher
	if cfg.MQTT.Broker != "" {
		mqttClient := mqtt.NewClient(&mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, logger.Logger)
		if err := mqttClient.Connect(); err != nil {
			logger.Warn("MQTT broker unreachable, tracking events will not be published", zap.Error(err))
		} else {
			defer mqttClient.Disconnect()
		}
		publisher = broker.NewEventPublisher(mqttClient)
	}

	router, importer := routes.SetupRoutes(cfg, db, gateway, notifier, publisher)

	var syncWorker *worker.SyncWorker
	if cfg.Sync.Enabled && gateway.Available() {
		syncWorker = worker.NewSyncWorker(importer, cfg.Sync.Schedule)
		if err := syncWorker.Start(); err != nil {
			logger.Fatal("Failed to start sync worker", zap.Error(err))
		}
	}

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	if syncWorker != nil {
		syncWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

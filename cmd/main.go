package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-system/internal/cli"
	"cafe-system/internal/config"
	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/messaging"
	"cafe-system/internal/services/account"
	"cafe-system/internal/services/catalog"
	"cafe-system/internal/services/notification"
	"cafe-system/internal/services/order"
	"cafe-system/internal/services/tracking"
)

func main() {
	var (
		mode           = flag.String("mode", "cafe", "Service mode (cafe, notification-subscriber)")
		configPath     = flag.String("config", "config.yaml", "Path to the configuration file")
		migrationsPath = flag.String("migrations", "migrations", "Path to the SQL migrations directory")
		prefetch       = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "cafe":
		if err := runCafe(ctx, cfg, log, *migrationsPath); err != nil {
			log.Error("service_failed", "Cafe terminal failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runCafe wires the stores and services together and hands control to
// the interactive terminal.
func runCafe(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	sessions := account.NewRedisSessionStore(cfg.Redis)
	defer sessions.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = sessions.Ping(pingCtx)
	pingCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("redis_connected", "Connected to Redis", requestID, nil)

	tokens := account.NewTokenManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	accounts := account.NewService(account.NewPostgresRepository(db), tokens, sessions, log)
	menu := catalog.NewService(catalog.NewPostgresRepository(db), log)
	orders := order.NewService(order.NewPostgresRepository(db), publisher, log)
	tracker := tracking.NewService(tracking.NewPostgresRepository(db), publisher, log)

	terminal := cli.New(accounts, menu, orders, tracker, log, os.Stdin, os.Stdout)
	return terminal.Run(ctx)
}

// runNotificationSubscriber consumes cafe events and prints them to
// the console.
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	return subscriber.Start(ctx)
}

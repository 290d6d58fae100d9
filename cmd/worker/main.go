package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tablebook/config"
	"github.com/Domenick1991/tablebook/internal/app"
	"github.com/Domenick1991/tablebook/internal/email"
	"github.com/Domenick1991/tablebook/internal/kafka"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka, logger)
	defer consumer.Close()

	sender := email.NewSender(logger)

	logger.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))

	if err := consumer.Consume(ctx, sender.Send); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}

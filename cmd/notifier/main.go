// Command notifier drains the email queue published by the api and delivers
// each message over SMTP, or logs it when no SMTP host is configured.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sportshub/internal/config"
	"sportshub/internal/notification"
	"sportshub/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	log := logger.New(cfg.AppEnv).Named("notifier")
	defer func() { _ = log.Sync() }()

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	var sender notification.Sender = notification.NewLogSender(log)
	if cfg.SMTPHost != "" {
		sender = notification.NewSMTPSender(notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}

	consumer := notification.NewConsumer(notification.ConsumerConfig{
		URL:      cfg.RabbitMQURL,
		Exchange: cfg.NotifyExchange,
		Queue:    cfg.NotifyQueue,
		Prefetch: cfg.NotifyWorkers,
	}, sender, log)

	if err := consumer.Connect(); err != nil {
		log.Fatal("rabbitmq connect failed", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("consuming", zap.String("queue", cfg.NotifyQueue))
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("consumer stopped", zap.Error(err))
	}
}

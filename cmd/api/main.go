package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sportshub/internal/app"
	"sportshub/internal/cache"
	"sportshub/internal/config"
	"sportshub/internal/database"
	"sportshub/internal/live"
	"sportshub/internal/notification"
	"sportshub/internal/pkg/jwt"
	"sportshub/internal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	log := logger.New(cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(context.Background(), db, log); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	sender, closeSender := newSender(cfg, log)
	defer closeSender()

	dispatcher := notification.NewDispatcher(cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout, log)

	guard, closeGuard := newLoginGuard(cfg, log)
	defer closeGuard()

	hub := live.NewHub(log)

	router := app.NewRouter(app.Deps{
		Config: cfg,
		Log:    log,
		DB:     db,
		Tokens: jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		Mailer: sender,
		Tasks:  dispatcher,
		Guard:  guard,
		Hub:    hub,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	hub.Close()
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn("notification queue not drained", zap.Error(err))
	}
}

// newSender prefers the broker, then direct SMTP, then the log sink.
func newSender(cfg *config.Config, log *zap.Logger) (notification.Sender, func()) {
	if cfg.RabbitMQURL != "" {
		pub, err := notification.NewPublisher(cfg.RabbitMQURL, cfg.NotifyExchange)
		if err != nil {
			log.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		log.Info("email via rabbitmq", zap.String("exchange", cfg.NotifyExchange))
		return pub, func() { _ = pub.Close() }
	}
	if cfg.SMTPHost != "" {
		log.Info("email via smtp", zap.String("host", cfg.SMTPHost))
		return notification.NewSMTPSender(smtpConfig(cfg)), func() {}
	}
	log.Warn("no mail transport configured, emails are logged only")
	return notification.NewLogSender(log), func() {}
}

func smtpConfig(cfg *config.Config) notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
}

func newLoginGuard(cfg *config.Config, log *zap.Logger) (cache.LoginGuard, func()) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, login lockout disabled")
		return cache.NoopLoginGuard{}, func() {}
	}
	client, err := cache.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}
	return cache.NewRedisLoginGuard(client, cfg.LoginMaxAttempts, cfg.LoginLockout), func() { _ = client.Close() }
}

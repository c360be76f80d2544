package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":4321"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"sportshub.db"`

	JWTSecret        string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL           time.Duration `envconfig:"JWT_TTL" default:"10m"`
	AllowAdminSignup bool          `envconfig:"ALLOW_ADMIN_SIGNUP" default:"false"`
	AdminEmail       string        `envconfig:"ADMIN_EMAIL" default:"admin@sportshub.com"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@sportshub.com"`

	RabbitMQURL     string        `envconfig:"RABBITMQ_URL"`
	NotifyExchange  string        `envconfig:"NOTIFY_EXCHANGE" default:"sportshub.notifications"`
	NotifyQueue     string        `envconfig:"NOTIFY_QUEUE" default:"sportshub.email"`
	NotifyWorkers   int           `envconfig:"NOTIFY_WORKERS" default:"4"`
	NotifyQueueSize int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	NotifyTimeout   time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"30s"`

	RedisAddr        string        `envconfig:"REDIS_ADDR"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	LoginMaxAttempts int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginLockout     time.Duration `envconfig:"LOGIN_LOCKOUT" default:"15m"`

	PDFDir    string `envconfig:"PDF_DIR" default:"./pdfs"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.AppEnv == "" {
		cfg.AppEnv = "dev"
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.NotifyWorkers <= 0 {
		return fmt.Errorf("NOTIFY_WORKERS must be > 0")
	}
	if cfg.NotifyQueueSize <= 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be > 0")
	}
	if cfg.NotifyTimeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be > 0")
	}
	if cfg.LoginMaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be > 0")
	}
	if cfg.LoginLockout <= 0 {
		return fmt.Errorf("LOGIN_LOCKOUT must be > 0")
	}
	if strings.TrimSpace(cfg.AdminEmail) == "" {
		return fmt.Errorf("ADMIN_EMAIL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AllowAdminSignup {
			return fmt.Errorf("in prod/release ALLOW_ADMIN_SIGNUP must be false")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

// Command seed creates the first admin account. Running it again is a no-op.
package main

import (
	"context"
	"errors"
	"flag"

	"go.uber.org/zap"

	"sportshub/internal/config"
	"sportshub/internal/database"
	"sportshub/internal/domain"
	"sportshub/internal/modules/auth"
	"sportshub/internal/pkg/logger"
	"sportshub/internal/repository"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	email := flag.String("email", "", "admin email (defaults to ADMIN_EMAIL)")
	phone := flag.String("phone", "0000000000", "admin phone, 10 digits")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}
	log := logger.New(cfg.AppEnv).Named("seed")
	defer func() { _ = log.Sync() }()

	if *email == "" {
		*email = cfg.AdminEmail
	}

	ctx := context.Background()
	account := auth.Account{Username: *username, Email: *email, Phone: *phone, Role: string(domain.RoleAdmin)}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}
	users := repository.NewUserRepository(db)

	existing, err := users.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		log.Info("account already exists", zap.String("username", existing.Username), zap.String("role", string(existing.Role)))
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.Fatal("lookup failed", zap.Error(err))
	}

	noneTaken := func(context.Context, string) (bool, error) { return false, nil }
	if err := auth.ValidateAccount(ctx, account, password, noneTaken); err != nil {
		log.Fatal("invalid admin account", zap.Error(err))
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("hash password failed", zap.Error(err))
	}

	admin := &domain.User{
		Username:     account.Username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Email:        account.Email,
		Phone:        account.Phone,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin failed", zap.Error(err))
	}
	log.Info("admin created", zap.Int64("id", admin.ID), zap.String("username", admin.Username))
}

package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations for the dialect behind db.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	dialect, dir, err := dialectFor(db.Dialector.Name())
	if err != nil {
		return err
	}

	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("migrations dir %s: %w", dir, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, sqlDB, sub)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration),
		)
	}
	return nil
}

func dialectFor(name string) (goose.Dialect, string, error) {
	switch name {
	case "postgres":
		return goose.DialectPostgres, "migrations/postgres", nil
	case "sqlite":
		return goose.DialectSQLite3, "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported dialect %q", name)
	}
}

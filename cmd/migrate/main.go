package main

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"github.com/fhuszti/videos-ms-go/internal/config"
	"github.com/fhuszti/videos-ms-go/internal/db"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	sqlDB, dialect, closeFn, err := initDb(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer closeFn()

	if err := migration.MigrateUp(sqlDB, dialect); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Infof(ctx, "✅  Migrations applied successfully (%s)", dialect)
}

func initDb(ctx context.Context, cfg *config.Settings) (*sql.DB, string, func(), error) {
	if cfg.RecordStore == config.RecordStorePostgres {
		pool, err := db.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, "", nil, err
		}
		return pool.SQLDB(), migration.DialectPostgres, pool.Close, nil
	}

	database, err := db.New(withMultiStatements(cfg.MariaDBDSN), cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		return nil, "", nil, err
	}
	return database.DB, migration.DialectMySQL, func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}, nil
}

func withMultiStatements(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}

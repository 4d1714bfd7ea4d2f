package db

import (
	"fmt"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/infra/migrate"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and brings its schema up to date.
// Postgres runs the embedded migrations; sqlite is migrated from the models.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gcfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db handle: %w", err)
		}
		if err := migrate.Up(sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("connected to postgres")
		return db, nil

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db handle: %w", err)
		}
		// a single connection keeps ":memory:" databases and the
		// foreign_keys pragma consistent.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		if err := db.AutoMigrate(&model.User{}, &model.Article{}, &model.Comment{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("opened sqlite database", zap.String("path", cfg.DatabaseURL))
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

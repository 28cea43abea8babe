// Package postgres provides the database connection factory.
package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/foyerapp/foyer/internal/infrastructure/config"
	gormmodels "github.com/foyerapp/foyer/internal/infrastructure/persistence/gorm"
)

// NewConnection opens the database configured in cfg and tunes the
// connection pool. SQLite is supported for local development and tests.
func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.App.Debug {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Database)
	default:
		dialector = postgres.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormmodels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("database schema migrated")
	}

	logger.Info("database connection established",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Database),
	)
	return db, nil
}

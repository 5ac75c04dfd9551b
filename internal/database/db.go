package database

import (
	"fmt"
	"strings"

	"granja/internal/config"
	"granja/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the API owns, in migration order.
var Models = []interface{}{
	&model.Role{},
	&model.Permission{},
	&model.User{},
	&model.Farm{},
	&model.Shed{},
	&model.EggType{},
	&model.ProductionBatch{},
	&model.StockEntry{},
}

// NewConnection initializes a new connection pool using GORM
func NewConnection(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.Path))
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.Driver == "sqlite" && isMemory(cfg.Path) {
		// each connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLiteDSN returns a file DSN, or a private in-memory database when path is empty.
func SQLiteDSN(path string) string {
	if isMemory(path) {
		return "file::memory:?_foreign_keys=1"
	}
	return "file:" + strings.TrimSpace(path) + "?_foreign_keys=1&_journal_mode=WAL"
}

func isMemory(path string) bool {
	path = strings.TrimSpace(path)
	return path == "" || strings.EqualFold(path, ":memory:")
}

// Migrate creates or updates every owned table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("database: auto-migrate: %w", err)
	}
	return nil
}

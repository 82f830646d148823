package gorm

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/domain/entity"
	"taskboard/pkg/log"
	"taskboard/pkg/msg"
)

// Config holds the connection settings of the task database.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// Open connects to PostgreSQL and verifies the connection.
func Open(config Config) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(config.URL), config)
}

// OpenDialector is Open for an arbitrary GORM dialector.
func OpenDialector(dialector gorm.Dialector, config Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(config.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg.GetMessage("db.error.connect"), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msg.GetMessage("db.error.connect"), err)
	}
	if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", msg.GetMessage("db.error.connect"), err)
	}

	log.Info(msg.GetMessage("db.connected"))
	return db, nil
}

// Migrate creates the task tables when they are missing. Existing columns
// are never altered in a destructive way.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Task{}, &entity.SubTask{}); err != nil {
		return fmt.Errorf("%s: %w", msg.GetMessage("db.error.migrate"), err)
	}
	log.Info(msg.GetMessage("db.migrated"))
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

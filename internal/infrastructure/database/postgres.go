package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abhinay-x/note-maker/internal/infrastructure/repositories"
)

// Open creates a Postgres connection. Query logging is at warn level unless
// debug is set.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	return OpenWith(postgres.Open(dsn), debug)
}

// OpenWith opens any GORM dialector with the service's settings. Duplicate
// key violations are translated to gorm.ErrDuplicatedKey.
func OpenWith(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the users, one_time_codes,
// refresh_sessions and notes tables.
func AutoMigrate(db *gorm.DB) error {
	for _, model := range repositories.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"github.com/gdg-garage/pulse-events/internal/config"
	"github.com/gdg-garage/pulse-events/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the SQLite database at path and migrates the schema.
// Pass ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers anyway; a single connection avoids "database is locked"
	// and keeps an in-memory database alive for the life of the pool.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Event{},
		&models.RSVP{},
		&models.ReminderLog{},
	)
}

func Connect(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	return db
}

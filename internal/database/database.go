package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens PostgreSQL for a DSN, SQLite for "sqlite:<path>", and a
// private in-memory SQLite database for "" or ":memory:".
func Connect(databaseURL string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	inMemory := databaseURL == "" || databaseURL == ":memory:" || databaseURL == "sqlite::memory:"

	switch {
	case inMemory:
		db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=1"), config)
	case strings.HasPrefix(databaseURL, "sqlite:"):
		dbPath := strings.TrimPrefix(databaseURL, "sqlite:")
		db, err = gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=1&_journal_mode=WAL"), config)
	default:
		db, err = gorm.Open(postgres.Open(databaseURL), config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if inMemory {
		// every new connection to :memory: would see an empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Budget{},
		&models.Expense{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

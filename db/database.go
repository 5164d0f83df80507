package db

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the SQLite file at path with foreign keys enforced.
// The pool is capped at one connection: the app has a single caller and
// SQLite serializes writers anyway.
func Open(path string, environment string) (*gorm.DB, error) {
	// Determine log level based on environment
	logLevel := gormlogger.Warn
	if environment == "development" {
		logLevel = gormlogger.Info
	}
	if environment == "test" {
		logLevel = gormlogger.Silent
	}

	database, err := gorm.Open(sqlite.Open(buildDSN(path)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return database, nil
}

// OpenMemory opens a private in-memory database with the schema applied.
// Each call gets its own database, which keeps tests isolated.
func OpenMemory() (*gorm.DB, error) {
	name := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared"
	database, err := Open(name, "test")
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		Close(database)
		return nil, err
	}
	return database, nil
}

func buildDSN(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"
	if !strings.Contains(path, "mode=memory") && path != ":memory:" {
		// Enable WAL mode for file databases
		params += "&_journal_mode=WAL"
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

// Close closes the database connection
func Close(database *gorm.DB) error {
	if database == nil {
		return nil
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}

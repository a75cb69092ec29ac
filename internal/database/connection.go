package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/startmenudetection/startmenudetection/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// uriEscaper keeps characters sqlite treats as URI delimiters inside the path.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

type DB struct {
	*gorm.DB
}

// Connect opens an existing store file for reading and writing. A missing
// file is an error; the store is provisioned outside this process.
func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	return open(fileURI(dbPath, "rw"))
}

// Create opens the store file, creating it and its directory if needed.
func Create(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return open(fileURI(dbPath, "rwc"))
}

func fileURI(dbPath, mode string) string {
	return fmt.Sprintf("file:%s?mode=%s", uriEscaper.Replace(dbPath), mode)
}

func open(dsn string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Initialize() error {
	err := db.AutoMigrate(&models.StoreKey{}, &models.StoreValue{})
	if err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

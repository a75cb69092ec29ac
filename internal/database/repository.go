package database

import (
	"github.com/startmenudetection/startmenudetection/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrKeyNotFound is returned when a store key has not been provisioned.
var ErrKeyNotFound = errors.New("store key not found")

// Repository handles all database operations for store keys and values
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateKey provisions a key path. Creating an existing key is a no-op.
func (r *Repository) CreateKey(path string) error {
	key := models.StoreKey{Path: path}
	result := r.db.Where("path = ?", path).FirstOrCreate(&key)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to create store key")
	}
	return nil
}

// OpenKey looks up a provisioned key path
func (r *Repository) OpenKey(path string) (*models.StoreKey, error) {
	var key models.StoreKey
	result := r.db.Where("path = ?", path).First(&key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to open store key")
	}
	return &key, nil
}

// SetValue writes a named entry under path, replacing any previous data
func (r *Repository) SetValue(path, name string, data int32) error {
	value := models.StoreValue{Path: path, Name: name, Data: data}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&value)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set store value")
	}
	return nil
}

// GetValue reads a named entry under path
func (r *Repository) GetValue(path, name string) (int32, error) {
	var value models.StoreValue
	result := r.db.Where("path = ? AND name = ?", path, name).First(&value)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to get store value")
	}
	return value.Data, nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// StoreKey is a path in the configuration store. Keys are provisioned by
// setup, never by the flag writer.
type StoreKey struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Path      string         `gorm:"not null;uniqueIndex" json:"path"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// StoreValue is a named 4-byte integer entry under a StoreKey.
type StoreValue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"not null;uniqueIndex:idx_store_value_entry" json:"path"`
	Name      string    `gorm:"not null;uniqueIndex:idx_store_value_entry" json:"name"`
	Data      int32     `gorm:"not null;default:0" json:"data"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

//go:build !windows

package flagstore

import "github.com/startmenudetection/startmenudetection/internal/config"

// Open returns the sqlite backed store.
func Open(cfg *config.Config) Store {
	return NewSQLiteStore(cfg.Store.DatabasePath, cfg.Store.KeyPath, cfg.Store.ValueName)
}

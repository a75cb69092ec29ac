//go:build windows

package flagstore

import "github.com/startmenudetection/startmenudetection/internal/config"

// Open returns the registry backed store.
func Open(cfg *config.Config) Store {
	return NewRegistryStore(cfg.Store.KeyPath, cfg.Store.ValueName)
}

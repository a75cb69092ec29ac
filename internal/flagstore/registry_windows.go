//go:build windows

package flagstore

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistryStore writes a REG_DWORD under HKEY_LOCAL_MACHINE. The 64-bit
// view is used so 32-bit builds write where readers of the 64-bit hive look.
type RegistryStore struct {
	keyPath   string
	valueName string
}

func NewRegistryStore(keyPath, valueName string) *RegistryStore {
	return &RegistryStore{keyPath: keyPath, valueName: valueName}
}

func (s *RegistryStore) SetFlag(value uint32) error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.keyPath, registry.SET_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return &StoreAccessError{Kind: PathUnopenable, Path: s.keyPath, Name: s.valueName, Err: err}
	}
	defer k.Close()

	if err := k.SetDWordValue(s.valueName, value); err != nil {
		kind := WriteFailed
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			kind = WriteDenied
		}
		return &StoreAccessError{Kind: kind, Path: s.keyPath, Name: s.valueName, Err: err}
	}

	return nil
}

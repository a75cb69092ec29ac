// Package flagstore persists the last reported launcher state as a 0/1
// entry in the system configuration store.
package flagstore

import (
	"log"

	"github.com/pkg/errors"
)

// Store writes the flag entry. Implementations open the key on every call,
// never create it, and release it before returning.
type Store interface {
	SetFlag(value uint32) error
}

// Writer persists reported states. Failures are logged and dropped so that
// the polling loop keeps running.
type Writer struct {
	store  Store
	logger *log.Logger
}

// NewWriter wraps store. A nil logger uses the standard logger.
func NewWriter(store Store, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{store: store, logger: logger}
}

// Write stores 1 when the launcher is shown and 0 otherwise.
func (w *Writer) Write(shown bool) {
	var value uint32
	if shown {
		value = 1
	}

	err := w.store.SetFlag(value)
	if err == nil {
		return
	}

	var accessErr *StoreAccessError
	if !errors.As(err, &accessErr) {
		w.logger.Printf("Error writing flag to configuration store: %v", err)
		return
	}

	switch accessErr.Kind {
	case PathUnopenable:
		w.logger.Printf("Error opening configuration store key %s: %v", accessErr.Path, accessErr.Err)
	case WriteDenied:
		w.logger.Printf("Access denied writing %s to configuration store: %v", accessErr.Name, accessErr.Err)
	default:
		w.logger.Printf("Error writing %s to configuration store: %v", accessErr.Name, accessErr.Err)
	}
}

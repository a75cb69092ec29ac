package visibility

import (
	"fmt"

	"github.com/pkg/errors"
)

// Prober is the interface that all launcher visibility implementations must satisfy
type Prober interface {
	// IsLauncherVisible reports whether the full-screen launcher (start screen) is shown
	IsLauncherVisible() (bool, error)

	// Backend returns the name of the platform service answering the query
	Backend() string

	// Close releases the handle to the visibility service
	Close() error
}

// OSError is a failure reported by the platform visibility service.
// Status holds the code the platform returned (an HRESULT on Windows).
type OSError struct {
	Op     string
	Status int64
	Err    error
}

// NewOSError returns an OSError for op with the given platform status.
func NewOSError(op string, status int64, cause error) *OSError {
	return &OSError{Op: op, Status: status, Err: cause}
}

func (e *OSError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: status 0x%08X", e.Op, uint32(e.Status))
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Code returns the numeric platform status.
func (e *OSError) Code() int64 {
	return e.Status
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// AsOSError finds the first OSError in err's chain.
func AsOSError(err error) (*OSError, bool) {
	var osErr *OSError
	if errors.As(err, &osErr) {
		return osErr, true
	}
	return nil, false
}

// IsOSError reports whether err carries a platform status.
func IsOSError(err error) bool {
	_, ok := AsOSError(err)
	return ok
}

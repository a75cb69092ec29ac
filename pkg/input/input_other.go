//go:build !windows && !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package input

type noInput struct{}

// New returns a watcher that never sees input on platforms without a
// pollable console.
func New() (Watcher, error) {
	return noInput{}, nil
}

func (noInput) Pending() bool { return false }

func (noInput) Close() error { return nil }

// Package input reports whether the user has pressed a key on the console
// without blocking the caller.
package input

// Watcher checks the console for a pending keypress.
type Watcher interface {
	// Pending reports whether a key has been pressed since the last call
	Pending() bool

	// Close restores the console to its original mode
	Close() error
}

//go:build windows

package input

import (
	"golang.org/x/sys/windows"
)

var (
	msvcrt    = windows.NewLazySystemDLL("msvcrt.dll")
	procKbhit = msvcrt.NewProc("_kbhit")
)

type consoleWatcher struct{}

// New returns a watcher backed by the C runtime's _kbhit.
func New() (Watcher, error) {
	if err := procKbhit.Find(); err != nil {
		return nil, err
	}
	return consoleWatcher{}, nil
}

func (consoleWatcher) Pending() bool {
	r, _, _ := procKbhit.Call()
	return r != 0
}

func (consoleWatcher) Close() error {
	return nil
}

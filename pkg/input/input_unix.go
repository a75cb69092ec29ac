//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package input

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// stdinWatcher polls a file descriptor. On a terminal, line buffering and
// echo are switched off so a single key is seen immediately.
type stdinWatcher struct {
	fd       int
	oldState *term.State
}

// New returns a watcher on standard input.
func New() (Watcher, error) {
	return newWatcher(int(os.Stdin.Fd()))
}

func newWatcher(fd int) (*stdinWatcher, error) {
	w := &stdinWatcher{fd: fd}
	if !term.IsTerminal(fd) {
		return w, nil
	}

	state, err := term.GetState(fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read terminal state")
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read terminal mode")
	}
	termios.Lflag &^= unix.ICANON | unix.ECHO
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, termios); err != nil {
		return nil, errors.Wrap(err, "failed to set terminal mode")
	}

	w.oldState = state
	return w, nil
}

// Pending consumes at most one byte when input is readable. End of file
// on a redirected stdin counts as input.
func (w *stdinWatcher) Pending() bool {
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	if fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
		return false
	}

	var buf [1]byte
	_, _ = unix.Read(w.fd, buf[:])
	return true
}

func (w *stdinWatcher) Close() error {
	if w.oldState == nil {
		return nil
	}
	state := w.oldState
	w.oldState = nil
	return term.Restore(w.fd, state)
}

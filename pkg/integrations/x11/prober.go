package x11

import (
	"encoding/binary"
	"strings"
	"syscall"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

const backendName = "x11"

// Prober reports a launcher as visible when the active X11 window belongs
// to one of the configured launcher classes.
type Prober struct {
	conn     *xgb.Conn
	root     xproto.Window
	atoms    map[string]xproto.Atom
	launcher map[string]struct{}
}

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"WM_CLASS",
}

// NewProber connects to the X server named by $DISPLAY.
func NewProber(launcherClasses []string) (*Prober, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, visibility.NewOSError("XOpenDisplay", statusOf(err), err)
	}

	setup := xproto.Setup(conn)
	p := &Prober{
		conn:     conn,
		root:     setup.DefaultScreen(conn).Root,
		atoms:    make(map[string]xproto.Atom, len(atomNames)),
		launcher: make(map[string]struct{}, len(launcherClasses)),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, visibility.NewOSError("InternAtom "+name, statusOf(err), err)
		}
		p.atoms[name] = reply.Atom
	}

	for _, class := range launcherClasses {
		p.launcher[strings.ToLower(class)] = struct{}{}
	}

	return p, nil
}

// IsLauncherVisible inspects the active window. No active window means the
// desktop is showing.
func (p *Prober) IsLauncherVisible() (bool, error) {
	if p.conn == nil {
		return false, errors.New("x11 prober is closed")
	}

	active, err := p.activeWindow()
	if err != nil {
		return false, err
	}
	if active == 0 {
		return false, nil
	}

	instance, class, err := p.windowClass(active)
	if err != nil {
		return false, err
	}

	return p.isLauncherClass(instance) || p.isLauncherClass(class), nil
}

func (p *Prober) Backend() string {
	return backendName
}

func (p *Prober) Close() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	return nil
}

func (p *Prober) activeWindow() (xproto.Window, error) {
	data, err := p.property(p.root, p.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil {
		return 0, visibility.NewOSError("GetProperty _NET_ACTIVE_WINDOW", statusOf(err), err)
	}
	if len(data) < 4 {
		return 0, nil
	}
	return xproto.Window(binary.LittleEndian.Uint32(data)), nil
}

func (p *Prober) windowClass(window xproto.Window) (instance, class string, err error) {
	data, err := p.property(window, p.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil {
		return "", "", visibility.NewOSError("GetProperty WM_CLASS", statusOf(err), err)
	}
	instance, class = parseWMClass(data)
	return instance, class, nil
}

func (p *Prober) property(window xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(p.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (p *Prober) isLauncherClass(name string) bool {
	if name == "" {
		return false
	}
	_, ok := p.launcher[strings.ToLower(name)]
	return ok
}

// parseWMClass splits the NUL separated instance and class names.
func parseWMClass(data []byte) (instance, class string) {
	if len(data) == 0 {
		return "", ""
	}
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

// statusOf maps a connection or protocol error to a numeric status:
// errno for socket failures, 1 otherwise.
func statusOf(err error) int64 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int64(errno)
	}
	return 1
}

//go:build windows

package appvisibility

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/pkg/errors"

	"github.com/startmenudetection/startmenudetection/pkg/visibility"
)

const backendName = "appvisibility"

// sFalse is returned by CoInitializeEx when the apartment is already initialised.
const sFalse = 0x00000001

var (
	clsidAppVisibility = ole.NewGUID("{7E5FE3D9-985F-4908-91F9-EE19F9FD1514}")
	iidIAppVisibility  = ole.NewGUID("{2246EA2D-CAEA-4444-A3C4-6DE827E44313}")
)

// iAppVisibilityVtbl mirrors the IAppVisibility method table from shobjidl.h.
type iAppVisibilityVtbl struct {
	ole.IUnknownVtbl
	GetAppVisibilityOnMonitor uintptr
	IsLauncherVisible         uintptr
	Advise                    uintptr
	Unadvise                  uintptr
}

// Prober owns one IAppVisibility interface pointer for its whole lifetime.
// COM objects are bound to the apartment of the creating thread, so the
// goroutine that calls Open must be the one calling IsLauncherVisible and Close.
type Prober struct {
	unknown      *ole.IUnknown
	uninitCOM    bool
	threadLocked bool
}

// Open initialises COM on the current thread and instantiates the
// AppVisibility service.
func Open() (*Prober, error) {
	runtime.LockOSThread()
	p := &Prober{threadLocked: true}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		if !ok || oleErr.Code() != sFalse {
			p.Close()
			return nil, visibility.NewOSError("CoInitialize", statusOf(err), err)
		}
	}
	p.uninitCOM = true

	unknown, err := ole.CreateInstance(clsidAppVisibility, iidIAppVisibility)
	if err != nil {
		p.Close()
		return nil, visibility.NewOSError("CoCreateInstance CLSID_AppVisibility IID_IAppVisibility", statusOf(err), err)
	}
	p.unknown = unknown

	return p, nil
}

// IsLauncherVisible calls IAppVisibility::IsLauncherVisible.
func (p *Prober) IsLauncherVisible() (bool, error) {
	if p.unknown == nil {
		return false, errors.New("appvisibility prober is closed")
	}

	vtbl := (*iAppVisibilityVtbl)(unsafe.Pointer(p.unknown.RawVTable))

	var visible int32
	hr, _, _ := syscall.SyscallN(
		vtbl.IsLauncherVisible,
		uintptr(unsafe.Pointer(p.unknown)),
		uintptr(unsafe.Pointer(&visible)),
	)
	if int32(hr) < 0 {
		return false, visibility.NewOSError("IAppVisibility::IsLauncherVisible", hresultStatus(hr), ole.NewError(hr))
	}

	return visible != 0, nil
}

// Backend returns the name of the COM service.
func (p *Prober) Backend() string {
	return backendName
}

// Close releases the interface pointer, uninitialises COM and unlocks the
// thread. Only what was acquired is released.
func (p *Prober) Close() error {
	if p.unknown != nil {
		p.unknown.Release()
		p.unknown = nil
	}
	if p.uninitCOM {
		ole.CoUninitialize()
		p.uninitCOM = false
	}
	if p.threadLocked {
		runtime.UnlockOSThread()
		p.threadLocked = false
	}
	return nil
}

func statusOf(err error) int64 {
	if oleErr, ok := err.(*ole.OleError); ok {
		return hresultStatus(oleErr.Code())
	}
	return 0
}

// hresultStatus reports an HRESULT as the signed value Windows defines it as.
func hresultStatus(hr uintptr) int64 {
	return int64(int32(uint32(hr)))
}

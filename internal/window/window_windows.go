//go:build windows

package window

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"promptbridge/internal/logging"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procIsIconic                 = user32.NewProc("IsIconic")
	procShowWindow               = user32.NewProc("ShowWindow")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procKeybdEvent               = user32.NewProc("keybd_event")
)

const (
	swRestore      = 9
	vkMenu         = 0x12
	keyeventfKeyUp = 0x0002
	maxTitleLen    = 256
)

// enumMu serializes window enumeration. The EnumWindows callback writes
// into package-level slots, so concurrent lookups would race without it.
var enumMu sync.Mutex

var (
	enumTargetPID uint32
	enumFound     Handle
)

// enumCallback is registered once; windows.NewCallback slots are a finite
// process-wide resource.
var enumCallback = windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid != enumTargetPID {
		return 1 // continue
	}
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1
	}
	enumFound = Handle(hwnd)
	return 0 // stop
})

// Supported reports whether window operations work on this platform.
func Supported() bool { return true }

// ForProcess returns the first visible top-level window owned by pid, in
// enumeration order. None means the process has no visible window right
// now; callers may retry later.
func ForProcess(pid uint32) Handle {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumTargetPID = pid
	enumFound = None
	procEnumWindows.Call(enumCallback, 0)
	return enumFound
}

// Foreground returns the currently focused top-level window.
func Foreground() Handle {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return Handle(hwnd)
}

// Title returns the window's title text, empty on failure.
func Title(h Handle) string {
	buf := make([]uint16, maxTitleLen)
	n, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), maxTitleLen)
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// FindByTitle returns the top-level window with exactly the given title.
func FindByTitle(title string) Handle {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return None
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	return Handle(hwnd)
}

// Activate brings h to the foreground and reports whether the system
// accepted the request.
//
// A minimized window is restored first, since SetForegroundWindow on an
// iconic window raises it without un-minimizing. The synthetic Alt tap
// around the call satisfies the foreground-lock heuristic, which otherwise
// rejects focus changes from background processes and only flashes the
// taskbar button.
func Activate(h Handle) bool {
	if !h.IsValid() {
		return false
	}

	if iconic, _, _ := procIsIconic.Call(uintptr(h)); iconic != 0 {
		procShowWindow.Call(uintptr(h), swRestore)
	}

	procKeybdEvent.Call(vkMenu, 0, 0, 0)
	ret, _, _ := procSetForegroundWindow.Call(uintptr(h))
	procKeybdEvent.Call(vkMenu, 0, keyeventfKeyUp, 0)

	if ret == 0 {
		logging.Warn("foreground request rejected", "hwnd", uintptr(h))
		return false
	}
	return true
}

//go:build !windows

package window

// Window resolution and activation require the Win32 window manager.
// On other platforms every lookup reports absence and every activation
// fails, which callers already treat as a degraded mode.

// Supported reports whether window operations work on this platform.
func Supported() bool { return false }

// ForProcess always returns None on this platform.
func ForProcess(pid uint32) Handle { return None }

// Foreground always returns None on this platform.
func Foreground() Handle { return None }

// Title always returns the empty string on this platform.
func Title(h Handle) string { return "" }

// FindByTitle always returns None on this platform.
func FindByTitle(title string) Handle { return None }

// Activate always reports failure on this platform.
func Activate(h Handle) bool { return false }

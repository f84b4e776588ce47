//go:build !windows

package inject

// SendInput has no equivalent here; every primitive reports
// ErrNotAvailable so callers surface a clear delivery failure.

// PressKey is unavailable on this platform.
func PressKey(vk uint16) error { return ErrNotAvailable }

// ReleaseKey is unavailable on this platform.
func ReleaseKey(vk uint16) error { return ErrNotAvailable }

// TapKey is unavailable on this platform.
func TapKey(vk uint16) error { return ErrNotAvailable }

// Chord is unavailable on this platform.
func Chord(modifier, key uint16) error { return ErrNotAvailable }

// TypeText is unavailable on this platform.
func TypeText(s string) error { return ErrNotAvailable }

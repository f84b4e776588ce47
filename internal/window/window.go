// Package window resolves and activates top-level windows.
//
// Handles are a point-in-time reference: the window behind one can close
// at any moment, so staleness is tolerated everywhere and lookups simply
// report absence.
package window

// Handle identifies a top-level window. The zero value means no window.
type Handle uintptr

// None is the absent window handle.
const None Handle = 0

// IsValid reports whether h refers to a window.
func (h Handle) IsValid() bool { return h != None }

// Package inject synthesizes keyboard input into the focused window.
package inject

import "errors"

// Virtual-key codes used by the delivery sequence.
const (
	VKControl = 0x11
	VKReturn  = 0x0D
	VKV       = 0x56
)

// ErrNotAvailable is returned on platforms without synthetic input.
var ErrNotAvailable = errors.New("input injection not available on this platform")

//go:build !windows

package spawn

import "errors"

// Detached spawning relies on PowerShell and console creation flags.
func spawnResident(Options) error {
	return errors.New("detached resident mode is only supported on Windows")
}

// Package spawn launches the resident helper as a fully detached process.
package spawn

// Options for launching the resident helper.
type Options struct {
	// ExePath is the helper binary; empty means the current executable.
	ExePath string

	// TerminalHWND is the terminal window handle to hand to the resident
	// process, zero if none was captured.
	TerminalHWND uintptr

	// Label is an optional session label shown in the helper window.
	Label string

	// Session is the agent session identifier.
	Session string
}

// Resident launches the helper in resident mode, detached from the
// calling console. It must return quickly: the caller is a hook on the
// agent's prompt path and blocks it until exit.
func Resident(opts Options) error {
	return spawnResident(opts)
}

//go:build !windows

package hotkey

// The low-level keyboard hook is a Win32 facility. On other platforms
// the engine starts and stops as a no-op so the surrounding program
// logic stays exercised.

// Engine is the no-op hook engine for this platform.
type Engine struct {
	targets *Targets
}

// NewEngine creates a no-op engine.
func NewEngine(triggerKey int, targets *Targets) *Engine {
	return &Engine{targets: targets}
}

// Start is a no-op on this platform.
func (e *Engine) Start() error { return nil }

// Stop is a no-op on this platform.
func (e *Engine) Stop() {}

// Available reports whether a hook session can be established.
func Available() (bool, string) {
	return false, "global keyboard hooks require Windows"
}

// Package hotkey implements the global toggle chord that flips focus
// between the terminal and the helper window.
//
// The decision logic is a pure function over three window handles so it
// can be specified and tested without a window system. The platform
// engine feeds it the current foreground window on every chord press and
// acts on the verdict.
package hotkey

import (
	"errors"
	"sync/atomic"

	"promptbridge/internal/window"
)

// ErrAlreadyRunning is returned when Start is called on an engine that
// already has an active hook session.
var ErrAlreadyRunning = errors.New("hook engine already running")

// Verdict is the outcome of one chord press.
type Verdict struct {
	// Consume suppresses the keystroke so the focused application never
	// sees it.
	Consume bool

	// Activate is the window to bring to the foreground, or None.
	Activate window.Handle
}

// forward is the pass-through verdict: the keystroke reaches whatever
// application is focused.
var forward = Verdict{}

// Decide maps a chord press onto the two-party toggle.
//
// The chord is strictly a toggle between the registered terminal and
// helper windows. With no terminal registered, or with any third window
// focused, the press is forwarded untouched so applications keep their
// own use of the same chord.
func Decide(fg, terminal, helper window.Handle) Verdict {
	if !terminal.IsValid() || !helper.IsValid() {
		return forward
	}
	switch fg {
	case terminal:
		return Verdict{Consume: true, Activate: helper}
	case helper:
		return Verdict{Consume: true, Activate: terminal}
	default:
		return forward
	}
}

// Targets holds the two toggle endpoints. Writes come from the discovery
// and registration paths while the hook thread reads on every chord
// press, so both sides go through atomics.
type Targets struct {
	terminal atomic.Uintptr
	helper   atomic.Uintptr
}

// SetTerminal registers the terminal window.
func (t *Targets) SetTerminal(h window.Handle) { t.terminal.Store(uintptr(h)) }

// SetHelper registers the helper window.
func (t *Targets) SetHelper(h window.Handle) { t.helper.Store(uintptr(h)) }

// Terminal returns the registered terminal window.
func (t *Targets) Terminal() window.Handle { return window.Handle(t.terminal.Load()) }

// Helper returns the registered helper window.
func (t *Targets) Helper() window.Handle { return window.Handle(t.helper.Load()) }

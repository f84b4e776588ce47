// Package deliver runs the paste-and-submit sequence into a target
// window.
//
// The sequence is deliberately rigid: activate, settle, paste, settle,
// submit. Each step either succeeds or aborts the whole delivery with a
// descriptive error, leaving recovery to the operator. There is no
// automatic retry because re-sending keystrokes against a window in an
// unknown state compounds the damage.
package deliver

import (
	"fmt"
	"time"

	"promptbridge/internal/inject"
	"promptbridge/internal/logging"
	"promptbridge/internal/window"
)

// triggerSettle is the pause between typing the trigger text and the
// submit key. Shorter than the paste settle: two characters land faster
// than a clipboard paste.
const triggerSettle = 50 * time.Millisecond

// Sequencer delivers clipboard content to a window via synthetic input.
type Sequencer struct {
	// ActivateSettle is the pause after activation before any input.
	ActivateSettle time.Duration

	// PasteSettle is the pause between paste and submit.
	PasteSettle time.Duration

	// TriggerText is the short command typed by SendTrigger.
	TriggerText string

	// Resolve locates a target when the caller passes None. Nil means
	// no fallback.
	Resolve func() window.Handle

	// Seams for tests. Zero values use the real platform calls.
	activate func(window.Handle) bool
	chord    func(modifier, key uint16) error
	tap      func(vk uint16) error
	typeText func(s string) error
	sleep    func(time.Duration)
}

// NewSequencer creates a sequencer with the given timing.
func NewSequencer(activateSettle, pasteSettle time.Duration, triggerText string) *Sequencer {
	return &Sequencer{
		ActivateSettle: activateSettle,
		PasteSettle:    pasteSettle,
		TriggerText:    triggerText,
		activate:       window.Activate,
		chord:          inject.Chord,
		tap:            inject.TapKey,
		typeText:       inject.TypeText,
		sleep:          time.Sleep,
	}
}

// Deliver activates target, pastes the current clipboard content into it,
// and submits with Enter.
//
// Activation failure aborts before any input is injected, so a rejected
// focus request never sprays keystrokes into the wrong window.
func (s *Sequencer) Deliver(target window.Handle) error {
	target = s.resolveTarget(target)
	if !target.IsValid() {
		return fmt.Errorf("deliver: no target window")
	}
	if !s.activate(target) {
		return fmt.Errorf("deliver: activation of window %#x rejected, nothing sent", uintptr(target))
	}
	s.sleep(s.ActivateSettle)

	if err := s.chord(inject.VKControl, inject.VKV); err != nil {
		return fmt.Errorf("deliver: paste chord: %w", err)
	}
	s.sleep(s.PasteSettle)

	if err := s.tap(inject.VKReturn); err != nil {
		return fmt.Errorf("deliver: submit key: %w", err)
	}

	logging.Debug("delivery complete", "hwnd", uintptr(target))
	return nil
}

// SendTrigger activates target and types the trigger text followed by
// Enter. This is the fallback path for handing control back when the
// clipboard must stay untouched.
func (s *Sequencer) SendTrigger(target window.Handle) error {
	target = s.resolveTarget(target)
	if !target.IsValid() {
		return fmt.Errorf("send trigger: no target window")
	}
	if !s.activate(target) {
		return fmt.Errorf("send trigger: activation of window %#x rejected, nothing sent", uintptr(target))
	}
	s.sleep(s.ActivateSettle)

	if err := s.typeText(s.TriggerText); err != nil {
		return fmt.Errorf("send trigger: type text: %w", err)
	}
	s.sleep(triggerSettle)

	if err := s.tap(inject.VKReturn); err != nil {
		return fmt.Errorf("send trigger: submit key: %w", err)
	}
	return nil
}

func (s *Sequencer) resolveTarget(target window.Handle) window.Handle {
	if !target.IsValid() && s.Resolve != nil {
		return s.Resolve()
	}
	return target
}

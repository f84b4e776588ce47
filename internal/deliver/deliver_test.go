package deliver

import (
	"errors"
	"testing"
	"time"

	"promptbridge/internal/inject"
	"promptbridge/internal/window"
)

const target = window.Handle(0x5000)

// recorder captures the full step sequence of a delivery.
type recorder struct {
	steps       []string
	activateOK  bool
	chordErr    error
	tapErr      error
	typeTextErr error
}

func (r *recorder) wire(s *Sequencer) {
	s.activate = func(h window.Handle) bool {
		r.steps = append(r.steps, "activate")
		return r.activateOK
	}
	s.chord = func(mod, key uint16) error {
		if mod == inject.VKControl && key == inject.VKV {
			r.steps = append(r.steps, "paste")
		} else {
			r.steps = append(r.steps, "chord?")
		}
		return r.chordErr
	}
	s.tap = func(vk uint16) error {
		if vk == inject.VKReturn {
			r.steps = append(r.steps, "enter")
		} else {
			r.steps = append(r.steps, "tap?")
		}
		return r.tapErr
	}
	s.typeText = func(text string) error {
		r.steps = append(r.steps, "type:"+text)
		return r.typeTextErr
	}
	s.sleep = func(d time.Duration) {
		r.steps = append(r.steps, "sleep:"+d.String())
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeliverOrdering(t *testing.T) {
	s := NewSequencer(150*time.Millisecond, 100*time.Millisecond, "//")
	r := &recorder{activateOK: true}
	r.wire(s)

	if err := s.Deliver(target); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	want := []string{"activate", "sleep:150ms", "paste", "sleep:100ms", "enter"}
	if !equal(r.steps, want) {
		t.Errorf("steps = %v, want %v", r.steps, want)
	}
}

func TestDeliverAbortsBeforeInjectionOnActivationFailure(t *testing.T) {
	s := NewSequencer(150*time.Millisecond, 100*time.Millisecond, "//")
	r := &recorder{activateOK: false}
	r.wire(s)

	err := s.Deliver(target)
	if err == nil {
		t.Fatal("expected error on rejected activation")
	}
	if !equal(r.steps, []string{"activate"}) {
		t.Errorf("no input may be injected after a rejected activation, got %v", r.steps)
	}
}

func TestDeliverRejectsAbsentTarget(t *testing.T) {
	s := NewSequencer(0, 0, "//")
	r := &recorder{activateOK: true}
	r.wire(s)

	if err := s.Deliver(window.None); err == nil {
		t.Fatal("expected error for absent target")
	}
	if len(r.steps) != 0 {
		t.Errorf("nothing may run without a target, got %v", r.steps)
	}
}

func TestDeliverResolvesAbsentTarget(t *testing.T) {
	s := NewSequencer(0, 0, "//")
	r := &recorder{activateOK: true}
	r.wire(s)
	s.Resolve = func() window.Handle { return target }

	if err := s.Deliver(window.None); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(r.steps) == 0 || r.steps[0] != "activate" {
		t.Errorf("resolved target must be activated, got %v", r.steps)
	}
}

func TestDeliverStopsAfterPasteFailure(t *testing.T) {
	s := NewSequencer(0, 0, "//")
	r := &recorder{activateOK: true, chordErr: errors.New("blocked")}
	r.wire(s)

	err := s.Deliver(target)
	if err == nil {
		t.Fatal("expected paste error to propagate")
	}
	want := []string{"activate", "sleep:0s", "paste"}
	if !equal(r.steps, want) {
		t.Errorf("steps = %v, want %v", r.steps, want)
	}
}

func TestSendTriggerOrdering(t *testing.T) {
	s := NewSequencer(150*time.Millisecond, 100*time.Millisecond, "//")
	r := &recorder{activateOK: true}
	r.wire(s)

	if err := s.SendTrigger(target); err != nil {
		t.Fatalf("send trigger: %v", err)
	}

	want := []string{"activate", "sleep:150ms", "type://", "sleep:50ms", "enter"}
	if !equal(r.steps, want) {
		t.Errorf("steps = %v, want %v", r.steps, want)
	}
}

func TestSendTriggerAbortsOnActivationFailure(t *testing.T) {
	s := NewSequencer(0, 0, "//")
	r := &recorder{activateOK: false}
	r.wire(s)

	if err := s.SendTrigger(target); err == nil {
		t.Fatal("expected error on rejected activation")
	}
	if !equal(r.steps, []string{"activate"}) {
		t.Errorf("steps = %v", r.steps)
	}
}

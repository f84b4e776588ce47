package hotkey

import (
	"testing"

	"promptbridge/internal/window"
)

const (
	term   = window.Handle(0x1000)
	helper = window.Handle(0x2000)
	other  = window.Handle(0x3000)
)

func TestDecideTogglesFromTerminal(t *testing.T) {
	v := Decide(term, term, helper)
	if !v.Consume {
		t.Error("chord on the terminal must be consumed")
	}
	if v.Activate != helper {
		t.Errorf("activate = %#x, want helper", uintptr(v.Activate))
	}
}

func TestDecideTogglesFromHelper(t *testing.T) {
	v := Decide(helper, term, helper)
	if !v.Consume {
		t.Error("chord on the helper must be consumed")
	}
	if v.Activate != term {
		t.Errorf("activate = %#x, want terminal", uintptr(v.Activate))
	}
}

func TestDecideForwardsOnThirdWindow(t *testing.T) {
	v := Decide(other, term, helper)
	if v.Consume {
		t.Error("chord on an unrelated window must be forwarded")
	}
	if v.Activate != window.None {
		t.Error("no activation expected")
	}
}

func TestDecideForwardsWithoutTerminal(t *testing.T) {
	v := Decide(term, window.None, helper)
	if v.Consume {
		t.Error("without a registered terminal the chord must pass through")
	}
}

func TestDecideForwardsWithoutHelper(t *testing.T) {
	v := Decide(term, term, window.None)
	if v.Consume {
		t.Error("without a registered helper the chord must pass through")
	}
}

func TestDecideForwardsOnAbsentForeground(t *testing.T) {
	v := Decide(window.None, term, helper)
	if v.Consume {
		t.Error("with no foreground window the chord must pass through")
	}
}

func TestTargetsRoundTrip(t *testing.T) {
	var targets Targets
	if targets.Terminal() != window.None || targets.Helper() != window.None {
		t.Fatal("fresh targets must be empty")
	}

	targets.SetTerminal(term)
	targets.SetHelper(helper)
	if targets.Terminal() != term {
		t.Errorf("terminal = %#x", uintptr(targets.Terminal()))
	}
	if targets.Helper() != helper {
		t.Errorf("helper = %#x", uintptr(targets.Helper()))
	}

	// Re-registration replaces the previous endpoint.
	targets.SetTerminal(other)
	if targets.Terminal() != other {
		t.Error("re-registration must replace the terminal handle")
	}
}

package window

import "testing"

func TestHandleValidity(t *testing.T) {
	if None.IsValid() {
		t.Error("zero handle must not be valid")
	}
	if !Handle(0x1234).IsValid() {
		t.Error("nonzero handle must be valid")
	}
}

func TestActivateRejectsAbsentHandle(t *testing.T) {
	if Activate(None) {
		t.Error("activating the absent handle must fail")
	}
}

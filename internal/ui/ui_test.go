package ui

import "testing"

func TestWindowTitle(t *testing.T) {
	if got := WindowTitle("PromptBridge", 0x1234); got != "PromptBridge-4660" {
		t.Errorf("title = %q", got)
	}
	// Zero handle still yields a stable title for discovery.
	if got := WindowTitle("PromptBridge", 0); got != "PromptBridge-0" {
		t.Errorf("title = %q", got)
	}
}

package hook

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	in, err := ReadInput(strings.NewReader(`{
		"session_id": "abc123",
		"hook_event_name": "UserPromptSubmit",
		"prompt": "// open the helper",
		"permission_mode": "default"
	}`))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if in.SessionID != "abc123" {
		t.Errorf("session id = %q", in.SessionID)
	}
	if in.HookEventName != "UserPromptSubmit" {
		t.Errorf("event name = %q", in.HookEventName)
	}
	if in.Prompt != "// open the helper" {
		t.Errorf("prompt = %q", in.Prompt)
	}
}

func TestReadInputMissingFieldsDefaultEmpty(t *testing.T) {
	in, err := ReadInput(strings.NewReader(`{"prompt": "//"}`))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if in.SessionID != "" || in.PermissionMode != "" {
		t.Error("absent fields must default to empty strings")
	}
}

func TestReadInputRejectsEmpty(t *testing.T) {
	if _, err := ReadInput(strings.NewReader("  \n")); err == nil {
		t.Error("blank stdin must be rejected")
	}
}

func TestReadInputRejectsOversized(t *testing.T) {
	big := `{"prompt": "` + strings.Repeat("a", maxInputSize) + `"}`
	if _, err := ReadInput(strings.NewReader(big)); err == nil {
		t.Error("oversized input must be rejected")
	}
}

func TestReadInputRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadInput(strings.NewReader("{not json")); err == nil {
		t.Error("malformed JSON must be rejected")
	}
}

func TestIsTrigger(t *testing.T) {
	tests := []struct {
		prompt string
		want   bool
	}{
		{"//", true},
		{"// some text", true},
		{"  //", true},
		{"hello", false},
		{"/hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTrigger(tt.prompt); got != tt.want {
			t.Errorf("IsTrigger(%q) = %v, want %v", tt.prompt, got, tt.want)
		}
	}
}

func TestWriteOutputFraming(t *testing.T) {
	var b strings.Builder
	if err := WriteOutput(&b, "do the thing"); err != nil {
		t.Fatal(err)
	}
	want := "[User's actual request from input helper]:\ndo the thing\n"
	if b.String() != want {
		t.Errorf("output = %q, want %q", b.String(), want)
	}
}

func TestOutputFromClipboard(t *testing.T) {
	var b strings.Builder
	err := OutputFromClipboard(&b, func() (string, error) {
		return "pasted request", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "pasted request") {
		t.Errorf("output = %q", b.String())
	}
}

func TestOutputFromClipboardRejectsEmpty(t *testing.T) {
	var b strings.Builder
	err := OutputFromClipboard(&b, func() (string, error) {
		return "  \n", nil
	})
	if err == nil {
		t.Error("empty clipboard must be an error")
	}
	if b.Len() != 0 {
		t.Error("nothing may be written on empty clipboard")
	}
}

func TestOutputFromClipboardPropagatesReadError(t *testing.T) {
	var b strings.Builder
	readErr := errors.New("clipboard locked")
	err := OutputFromClipboard(&b, func() (string, error) {
		return "", readErr
	})
	if !errors.Is(err, readErr) {
		t.Errorf("err = %v, want wrapped %v", err, readErr)
	}
}

func TestOutputSerialization(t *testing.T) {
	out := Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:     "UserPromptSubmit",
			AdditionalContext: "test context",
		},
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"hookSpecificOutput", "hookEventName", "additionalContext"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized output missing %q: %s", key, data)
		}
	}
}

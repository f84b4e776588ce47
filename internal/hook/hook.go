// Package hook implements the agent-side prompt hook protocol.
//
// The agent runs the helper as a prompt-submit hook, feeding one JSON
// object on stdin. Plain text written to stdout is injected back into
// the agent's context, so the output carries a fixed framing line that
// marks the helper text as the user's actual request.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxInputSize caps stdin reads. Hook input is a single small JSON
// object; anything near the cap is malformed or hostile.
const maxInputSize = 100 * 1024

// Input is the hook invocation payload.
type Input struct {
	SessionID      string `json:"session_id"`
	HookEventName  string `json:"hook_event_name"`
	Prompt         string `json:"prompt"`
	PermissionMode string `json:"permission_mode"`
}

// Output is the structured hook response form.
type Output struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
}

// SpecificOutput carries the context addition for one hook event.
type SpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// ReadInput reads and parses the hook payload from r, enforcing the
// input size cap.
func ReadInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("read hook input: %w", err)
	}
	if len(data) >= maxInputSize {
		return nil, fmt.Errorf("hook input exceeds %d bytes", maxInputSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("no hook input on stdin")
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}
	return &in, nil
}

// IsTrigger reports whether the prompt invokes the input helper.
func IsTrigger(prompt string) bool {
	return strings.HasPrefix(strings.TrimSpace(prompt), "//")
}

// WriteOutput writes text to w with the framing the agent expects for a
// replacement request.
func WriteOutput(w io.Writer, text string) error {
	if _, err := fmt.Fprintf(w, "[User's actual request from input helper]:\n%s\n", text); err != nil {
		return fmt.Errorf("write hook output: %w", err)
	}
	return nil
}

// OutputFromClipboard writes the clipboard content to w using the hook
// framing. An empty clipboard is an error: the helper window closed
// without submitting anything.
func OutputFromClipboard(w io.Writer, readClipboard func() (string, error)) error {
	text, err := readClipboard()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("clipboard is empty, nothing submitted")
	}
	return WriteOutput(w, text)
}

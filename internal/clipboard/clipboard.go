// Package clipboard wraps system clipboard access for prompt handoff.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Write places text on the system clipboard.
func Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Read returns the current clipboard text.
func Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// NormalizeSubmission prepares editor text for handoff: line endings
// become LF and trailing whitespace is dropped so the submit key is the
// only newline the target sees.
func NormalizeSubmission(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimRight(text, " \t\n")
}

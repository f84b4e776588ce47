package clipboard

import "testing"

func TestNormalizeSubmission(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"crlf to lf", "line one\r\nline two", "line one\nline two"},
		{"bare cr", "line one\rline two", "line one\nline two"},
		{"trailing newline dropped", "request\n", "request"},
		{"trailing whitespace dropped", "request \t\n\n", "request"},
		{"interior blank lines kept", "a\n\nb", "a\n\nb"},
		{"empty", "", ""},
		{"whitespace only", " \n\t", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSubmission(tt.in); got != tt.want {
				t.Errorf("NormalizeSubmission(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

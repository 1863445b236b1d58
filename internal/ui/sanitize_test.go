package ui

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"", ""},
		{"tab\there", "tab\u2409here"},
		{"esc\x1b[2J", "esc\u241b[2J"},
		{"nul\x00", "nul\u2400"},
		{"del\x7f", "del\u2421"},
		{"csi\u009b1m", "csi\ufffd1m"},
		{"日本語 ✓", "日本語 ✓"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

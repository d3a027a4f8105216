package budget

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func Test_Estimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"short rounds up to one", "ab", 1},
		{"exact multiple", strings.Repeat("x", 40), 10},
		{"truncating division", strings.Repeat("x", 43), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Estimate(tt.in); got != tt.want {
				t.Errorf("Estimate(%d chars) = %d, want %d", len(tt.in), got, tt.want)
			}
		})
	}
}

func Test_TruncateText_WithinBudget(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("a", 100)
	if got := TruncateText(s, 100); got != s {
		t.Error("text within budget must be returned unchanged")
	}
	if got := TruncateText(s, 0); got != s {
		t.Error("non-positive budget disables truncation")
	}
}

func Test_TruncateText_Cuts(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("a", 1000)
	got := TruncateText(s, 10)
	if len(got) != 40 {
		t.Errorf("want 40 chars for a 10-token budget, got %d", len(got))
	}
}

func Test_TruncateText_RuneBoundary(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("é", 1000) // 2 bytes per rune
	got := TruncateText(s, 10)
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a multi-byte rune")
	}
	if len(got) > 40 {
		t.Errorf("truncated text exceeds byte budget: %d bytes", len(got))
	}
}

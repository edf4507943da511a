package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short unchanged", "transaction processed", 40, "transaction processed"},
		{"long ascii", strings.Repeat("a", 30), 20, strings.Repeat("a", 17) + "..."},
		{"floor applied", "abcdefghijklmnop", 3, "abcdefg..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncate_MultibyteStaysValid(t *testing.T) {
	// Settlement messages can carry non-ASCII text; cutting mid-rune would
	// render replacement characters in the actions pane.
	in := strings.Repeat("日本語テキスト", 10)
	got := truncate(in, 20)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Errorf("rune count = %d, want 20", n)
	}
}

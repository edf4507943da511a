package dex

import "testing"

func TestParseScanAmount(t *testing.T) {
	tests := []struct {
		raw    string
		symbol string
		want   string
		ok     bool
	}{
		{"0.23462743:GALA", "GALA", "0.23462743", true},
		{"150:GALA", "GALA", "150", true},
		{"1.5:GUSDC", "GALA", "", false},
		{"GALA", "GALA", "", false},
		{"abc:GALA", "GALA", "", false},
		{"", "GALA", "", false},
	}
	for _, tt := range tests {
		got, ok := parseScanAmount(tt.raw, tt.symbol)
		if ok != tt.ok {
			t.Errorf("parseScanAmount(%q): ok=%v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("parseScanAmount(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

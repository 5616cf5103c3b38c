package driver_test

import (
	"testing"

	"github.com/forestaa/troll/internal/driver"
)

func TestMatchFold(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		pattern string
		want    bool
	}{
		{"empty pattern", "counter", "", true},
		{"exact", "counter", "counter", true},
		{"substring", "hoges[0].array", "array", true},
		{"case folded subject", "GPIO_BASE", "gpio", true},
		{"case folded pattern", "counter", "COUNT", true},
		{"miss", "counter", "timer", false},
		{"combining accent normalized", "café", "café", true},
		{"empty subject", "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := driver.MatchFold(tt.s, tt.pattern); got != tt.want {
				t.Errorf("MatchFold(%q, %q) = %v, want %v", tt.s, tt.pattern, got, tt.want)
			}
		})
	}
}

package ui

import (
	"strings"
	"testing"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.value); got != tt.want {
			t.Errorf("formatCount(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.00"},
		{0.5, "0.50"},
		{9.99, "9.99"},
		{1234.56, "1,234.56"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.value); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatNoBrokenVerbs(t *testing.T) {
	for _, v := range []float64{0, 1, 99.99, 12345.67} {
		for _, got := range []string{formatCount(v), formatRate(v)} {
			if strings.Contains(got, "%!") || strings.Contains(got, "float64") {
				t.Errorf("formatted value has broken format verb: %q", got)
			}
		}
	}
}

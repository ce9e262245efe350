package format

import (
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole dollars with grouping", 31176, "$31,176"},
		{"rounds to nearest dollar", 31176.49, "$31,176"},
		{"negative", -1234.5, "-$1,235"},
		{"zero", 0, "$0"},
		{"negative rounding to zero", -0.4, "$0"},
		{"millions", 1234567.8, "$1,234,568"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{100, "100%"},
		{153.4, "153%"},
		{-42.6, "-43%"},
		{-0.2, "0%"},
		{1250, "1,250%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestHoursAndMonths(t *testing.T) {
	tests := []struct {
		name   string
		render func(float64) string
		value  float64
		want   string
	}{
		{"weekly hours", Hours, 8, "8.0 hrs"},
		{"monthly hours", Hours, 34.64, "34.6 hrs"},
		{"annual hours", Hours, 415.68, "415.7 hrs"},
		{"large hours grouped", Hours, 12345.67, "12,345.7 hrs"},
		{"payback months", Months, 6, "6.0 mo"},
		{"negative zero months", Months, -0.01, "0.0 mo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.render(tt.value); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{11.7, 1, "11.7"},
		{11.7, 0, "12"},
		{2500, 0, "2,500"},
		{3, -1, "3"},
	}
	for _, tt := range tests {
		if got := Count(tt.value, tt.decimals); got != tt.want {
			t.Errorf("Count(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(100, true, Percent); got != "100%" {
		t.Errorf("expected applicable value to render, got %q", got)
	}
	if got := Optional(100, false, Percent); got != "N/A" {
		t.Errorf("expected N/A, got %q", got)
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestRoundFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.0},
		{0.1 + 0.2, 0.3},
		{3.14159, 3.14},
		{2.718, 2.72},
		{9999.999, 10000},
		{-1.234, -1.23},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundFloat(tc.in, 2); got != tc.want {
			t.Fatalf("RoundFloat(%v, 2) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		raised, goal, want float64
	}{
		{0, 10000, 0},
		{2500, 10000, 25},
		{10000, 10000, 100},
		{15000, 10000, 100},
		{333, 1000, 33.3},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := ProgressPercent(tc.raised, tc.goal); got != tc.want {
			t.Fatalf("ProgressPercent(%v, %v) = %v, want %v", tc.raised, tc.goal, got, tc.want)
		}
	}
}

func TestGenerateReferenceID(t *testing.T) {
	a := GenerateReferenceID()
	b := GenerateReferenceID()
	if !strings.HasPrefix(a, "CHY-") {
		t.Fatalf("expected CHY- prefix, got %s", a)
	}
	if a == b {
		t.Fatal("expected unique references")
	}
	if a != strings.ToUpper(a) {
		t.Fatalf("expected uppercase reference, got %s", a)
	}
}

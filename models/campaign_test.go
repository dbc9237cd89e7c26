package models

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want TagList
	}{
		{"trims and dedupes", []string{"medical", " urgent ", "medical", ""}, TagList{"medical", "urgent"}},
		{"keeps order", []string{"b", "a", "b"}, TagList{"b", "a"}},
		{"all empty", []string{"", "  "}, nil},
		{"nil input", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTags(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeTags(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTagListRoundTrip(t *testing.T) {
	tags := TagList{"medical", "urgent"}
	val, err := tags.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	var back TagList
	if err := back.Scan(val); err != nil {
		t.Fatalf("Scan(%v) error: %v", val, err)
	}
	if !reflect.DeepEqual(back, tags) {
		t.Fatalf("round trip = %v, want %v", back, tags)
	}

	var empty TagList
	val, err = empty.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if val != "[]" {
		t.Fatalf("empty Value() = %v, want []", val)
	}
	if err := back.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if back != nil {
		t.Fatalf("Scan(nil) left %v, want nil", back)
	}
}

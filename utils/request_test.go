package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestPathID(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    uint
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"garbage", "abc", 0, true},
		{"missing", "", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/campaigns/x", nil)
			if tc.raw != "" {
				req = mux.SetURLVars(req, map[string]string{"id": tc.raw})
			}
			id, err := PathID(req, "id")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("PathID(%q) expected error, got %d", tc.raw, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("PathID(%q) unexpected error: %v", tc.raw, err)
			}
			if id != tc.want {
				t.Fatalf("PathID(%q) = %d, want %d", tc.raw, id, tc.want)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"page floor", "page=0&limit=5", 1, 5},
		{"negative page", "page=-2", 1, 10},
		{"limit floor", "limit=0", 1, 10},
		{"limit cap", "limit=500", 1, 100},
		{"garbage", "page=abc&limit=xyz", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/campaigns?"+tc.query, nil)
			page, limit := Pagination(req)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("Pagination(%q) = (%d, %d), want (%d, %d)", tc.query, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

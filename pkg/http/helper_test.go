package http

import (
	"net/http/httptest"
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 1},
		{"valid", "page=3", 3},
		{"first page", "page=1", 1},
		{"zero", "page=0", 1},
		{"negative", "page=-2", 1},
		{"non-numeric", "page=abc", 1},
		{"float", "page=2.5", 1},
		{"large", "page=9999", 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/cars?"+tt.query, nil)
			if got := ParsePage(r); got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

package http

import (
	"net/http"
	"strconv"
)

// ParsePage reads the "page" query parameter. Listing pages are 1-based;
// anything missing, non-numeric, or below 1 falls back to page 1.
func ParsePage(r *http.Request) int {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1
	}
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

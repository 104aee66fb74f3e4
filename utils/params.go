package utils

import (
	"net/http"
	"strconv"
)

// ParsePage returns the 1-based page query parameter.
func ParsePage(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// ParsePagination returns skip/limit for the request, clamping limit to max.
func ParsePagination(r *http.Request, def, max int) (skip, limit int64) {
	page := ParsePage(r)

	l, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if l < 1 {
		l = def
	}
	if l > max {
		l = max
	}

	return int64(page-1) * int64(l), int64(l)
}

package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=0", 1},
		{"page=-3", 1},
		{"page=junk", 1},
		{"page=7", 7},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/?"+tc.query, nil)
		assert.Equal(t, tc.want, ParsePage(r), tc.query)
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{"", 0, 10},
		{"page=3", 20, 10},
		{"limit=5", 0, 5},
		{"limit=500", 0, 100},
		{"limit=-2", 0, 10},
		{"page=2&limit=25", 25, 25},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/?"+tc.query, nil)
		skip, limit := ParsePagination(r, 10, 100)
		assert.Equal(t, tc.wantSkip, skip, tc.query)
		assert.Equal(t, tc.wantLimit, limit, tc.query)
	}
}

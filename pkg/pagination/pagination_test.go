package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit page", "?page=3", 3, 20, 40},
		{"explicit per_page", "?per_page=50", 1, 50, 0},
		{"both", "?page=2&per_page=10", 2, 10, 10},
		{"invalid page ignored", "?page=abc", 1, 20, 0},
		{"zero page ignored", "?page=0", 1, 20, 0},
		{"per_page capped at 100", "?per_page=500", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/products"+tt.query, nil)
			p := FromRequest(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestNewResult(t *testing.T) {
	params := Params{Page: 2, PerPage: 10}
	result := NewResult([]string{"a", "b"}, 25, params)

	assert.Equal(t, 25, result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)

	last := NewResult([]string{"c"}, 25, Params{Page: 3, PerPage: 10})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

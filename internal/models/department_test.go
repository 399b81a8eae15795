package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name           string
		total          int
		page           int
		perPage        int
		wantTotalPages int
	}{
		{"partial last page", 45, 1, 20, 3},
		{"exact multiple", 40, 2, 20, 2},
		{"single short page", 5, 1, 20, 1},
		{"no rows no pages", 0, 1, 20, 0},
		{"per page of one", 3, 1, 1, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.page, tc.perPage)
			assert.Equal(t, tc.wantTotalPages, p.TotalPages)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.perPage, p.PerPage)
		})
	}
}

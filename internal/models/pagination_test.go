package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		want        Pagination
	}{
		{"defaults", 0, 0, 0, Pagination{Page: 1, Limit: 20, Total: 0, Pages: 0}},
		{"negative", -3, -1, 45, Pagination{Page: 1, Limit: 20, Total: 45, Pages: 3}},
		{"capped limit", 2, 500, 250, Pagination{Page: 2, Limit: 100, Total: 250, Pages: 3}},
		{"exact pages", 1, 5, 10, Pagination{Page: 1, Limit: 5, Total: 10, Pages: 2}},
		{"past the end", 9, 2, 5, Pagination{Page: 9, Limit: 2, Total: 5, Pages: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 2, Offset(2, 2))
}

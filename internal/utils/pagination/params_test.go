package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"limit clamped to max", 2, 150, 2, 100},
		{"limit at max untouched", 1, 100, 1, 100},
		{"normal values", 4, 20, 4, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Normalize(1, 10).Offset())
	assert.Equal(t, 30, pagination.Normalize(4, 10).Offset())
}

func TestTotalPages(t *testing.T) {
	p := pagination.Normalize(1, 10)
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 5, p.TotalPages(42))
}

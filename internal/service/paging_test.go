package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalItems int
		wantPage   int
		wantTotal  int
	}{
		{"page zero clamps to first", 0, 12, 1, 3},
		{"negative page clamps to first", -1, 12, 1, 3},
		{"overshoot clamps to last", 99, 12, 3, 3},
		{"last page stays", 3, 12, 3, 3},
		{"middle page stays", 2, 12, 2, 3},
		{"empty list still has one page", 1, 0, 1, 1},
		{"overshoot on empty list", 7, 0, 1, 1},
		{"exact multiple", 2, 10, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := ClampPage(tt.page, tt.totalItems)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

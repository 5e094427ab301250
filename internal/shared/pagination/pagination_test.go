package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		defaultSize int
		want        Page
	}{
		{"defaults when absent", "", DefaultSize, Page{Number: 1, Size: 10}},
		{"admin default size", "", DefaultAdminSize, Page{Number: 1, Size: 9}},
		{"explicit values", "page=3&limit=25", DefaultSize, Page{Number: 3, Size: 25}},
		{"unparsable page", "page=abc&limit=5", DefaultSize, Page{Number: 1, Size: 5}},
		{"zero limit", "page=2&limit=0", DefaultSize, Page{Number: 2, Size: 10}},
		{"negative page", "page=-4", DefaultSize, Page{Number: 1, Size: 10}},
		{"fractional limit", "limit=2.5", DefaultSize, Page{Number: 1, Size: 10}},
		{"non-positive default", "", 0, Page{Number: 1, Size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FromValues(values, tt.defaultSize))
		})
	}
}

func TestPage_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Page{Number: 1, Size: 9}.Offset())
	assert.Equal(t, 18, Page{Number: 3, Size: 9}.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{20, 9, 3},
		{18, 9, 2},
		{1, 10, 1},
		{0, 10, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		limit   string
		want    Params
		wantErr bool
	}{
		{"defaults", "", "", Params{Page: 1, Limit: 10}, false},
		{"explicit", "3", "25", Params{Page: 3, Limit: 25}, false},
		{"max limit", "1", "100", Params{Page: 1, Limit: 100}, false},
		{"limit too big", "1", "101", Params{}, true},
		{"zero page", "0", "10", Params{}, true},
		{"negative limit", "1", "-5", Params{}, true},
		{"non numeric", "abc", "10", Params{}, true},
		{"float", "1.5", "10", Params{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.page, tt.limit)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateMetadata(t *testing.T) {
	page := Paginate(seq(25), Params{Page: 2, Limit: 10})
	assert.Equal(t, seq(20)[10:], page.Items)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)

	last := Paginate(seq(25), Params{Page: 3, Limit: 10})
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasNextPage)
}

func TestPaginatePastEnd(t *testing.T) {
	page := Paginate(seq(5), Params{Page: 4, Limit: 10})
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string{}, Params{Page: 1, Limit: 10})
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.False(t, page.HasPrevPage)
}

func TestPaginateConcatenationCoversSequence(t *testing.T) {
	items := seq(37)
	for _, limit := range []int{1, 3, 10, 37, 100} {
		var all []int
		for p := 1; ; p++ {
			page := Paginate(items, Params{Page: p, Limit: limit})
			assert.Equal(t, len(items), page.TotalItems)
			all = append(all, page.Items...)
			if !page.HasNextPage {
				break
			}
		}
		assert.Equal(t, items, all, "limit %d", limit)
	}
}

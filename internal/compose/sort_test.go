package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clip struct {
	Title   string
	Views   int64
	Created time.Time
}

var clipSorter = NewSorter("createdAt", map[string]func(a, b clip) int{
	"createdAt": ByTime(func(c clip) time.Time { return c.Created }),
	"views":     By(func(c clip) int64 { return c.Views }),
	"title":     By(func(c clip) string { return c.Title }),
})

func TestSorterParse(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		sortType  string
		want      Order
		wantError error
	}{
		{"defaults", "", "", Order{Field: "createdAt", Desc: true}, nil},
		{"asc", "views", "asc", Order{Field: "views"}, nil},
		{"case-insensitive type", "title", "DESC", Order{Field: "title", Desc: true}, nil},
		{"unknown field", "password", "asc", Order{}, ErrUnknownSortField},
		{"unknown type", "views", "sideways", Order{}, ErrUnknownSortType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clipSorter.Parse(tt.field, tt.sortType)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSorterSort(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clips := []clip{
		{"b", 10, base.Add(2 * time.Hour)},
		{"a", 30, base},
		{"c", 10, base.Add(time.Hour)},
	}

	clipSorter.Sort(clips, Order{Field: "createdAt", Desc: true})
	assert.Equal(t, []string{"b", "c", "a"}, titles(clips))

	clipSorter.Sort(clips, Order{Field: "views"})
	assert.Equal(t, []string{"b", "c", "a"}, titles(clips), "stable on equal views")

	clipSorter.Sort(clips, Order{Field: "title"})
	assert.Equal(t, []string{"a", "b", "c"}, titles(clips))
}

func titles(cs []clip) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

package compose

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownSortType  = errors.New("unknown sort type")
)

// Order is a parsed sort request
type Order struct {
	Field string
	Desc  bool
}

// Sorter orders items by one of a closed set of fields
type Sorter[T any] struct {
	def    string
	fields map[string]func(a, b T) int
}

// NewSorter creates a Sorter; def is used when no field is requested
func NewSorter[T any](def string, fields map[string]func(a, b T) int) Sorter[T] {
	return Sorter[T]{def: def, fields: fields}
}

// Parse validates a sortBy/sortType pair. Empty values mean the default field, descending.
func (s Sorter[T]) Parse(field, sortType string) (Order, error) {
	if field == "" {
		field = s.def
	}
	if _, ok := s.fields[field]; !ok {
		return Order{}, errors.Wrapf(ErrUnknownSortField, "%q (allowed: %s)", field, strings.Join(s.Fields(), ", "))
	}

	switch strings.ToLower(sortType) {
	case "", "desc":
		return Order{Field: field, Desc: true}, nil
	case "asc":
		return Order{Field: field}, nil
	default:
		return Order{}, errors.Wrapf(ErrUnknownSortType, "%q (allowed: asc, desc)", sortType)
	}
}

// Sort orders items in place. The sort is stable so equal keys keep store order.
func (s Sorter[T]) Sort(items []T, o Order) {
	compare, ok := s.fields[o.Field]
	if !ok {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if o.Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

// Fields lists the accepted field names
func (s Sorter[T]) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByTime builds a comparator over a time field
func ByTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

// By builds a comparator over an ordered field
func By[T any, K cmp.Ordered](get func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

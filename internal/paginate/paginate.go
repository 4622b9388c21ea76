// Package paginate slices a fully composed sequence into pages.
package paginate

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrInvalidParams is returned for non-numeric, non-positive or oversized page parameters
var ErrInvalidParams = errors.New("invalid page parameters")

// Params is a validated page request
type Params struct {
	Page  int
	Limit int
}

// Page is one slice of a sequence together with totals over the whole sequence
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Parse reads page and limit query values. Missing values take the defaults.
func Parse(page, limit string) (Params, error) {
	p, err := parsePositive("page", page, DefaultPage)
	if err != nil {
		return Params{}, err
	}
	l, err := parsePositive("limit", limit, DefaultLimit)
	if err != nil {
		return Params{}, err
	}
	if l > MaxLimit {
		return Params{}, errors.Wrapf(ErrInvalidParams, "limit must be at most %d", MaxLimit)
	}
	return Params{Page: p, Limit: l}, nil
}

func parsePositive(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidParams, "%s must be a number", name)
	}
	if n < 1 {
		return 0, errors.Wrapf(ErrInvalidParams, "%s must be positive", name)
	}
	return n, nil
}

// Paginate returns the requested page of items. A page past the end has no items but correct totals.
func Paginate[T any](items []T, p Params) Page[T] {
	total := len(items)
	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}

	start := (p.Page - 1) * p.Limit
	page := []T{}
	if start < total {
		end := min(start+p.Limit, total)
		page = items[start:end]
	}

	return Page[T]{
		Items:       page,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalItems:  total,
		TotalPages:  pages,
		HasNextPage: p.Page < pages,
		HasPrevPage: p.Page > 1,
	}
}

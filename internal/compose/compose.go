// Package compose joins rows from one collection with records fetched in a
// single batch from another, projecting the foreign side onto a view type.
package compose

import (
	"context"

	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/anonto42/nano-tube/backend/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Policy decides what happens to a row whose foreign record is missing
type Policy int

const (
	// Inner drops the row. Used where a missing record means broken data.
	Inner Policy = iota
	// Left keeps the row with a nil projection.
	Left
)

// FetchFunc loads the foreign records for keys in one round-trip.
// Records for unknown keys are simply absent from the result.
type FetchFunc[R any] func(ctx context.Context, keys []string) ([]R, error)

// One describes a to-one join
type One[L, R, P any] struct {
	Name       string
	LocalKey   func(L) string
	Fetch      FetchFunc[R]
	ForeignKey func(R) string
	Project    func(R) P
	Policy     Policy
}

// Many describes a to-many join over an ordered list of keys held by each row
type Many[L, R, P any] struct {
	Name       string
	LocalKeys  func(L) []string
	Fetch      FetchFunc[R]
	ForeignKey func(R) string
	Project    func(R) P
}

// JoinOne resolves the foreign record of every row and passes its projection to build.
// Row order is preserved.
func JoinOne[L, R, P, O any](ctx context.Context, rows []L, join One[L, R, P], build func(L, *P) O) ([]O, error) {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, join.LocalKey(row))
	}

	index, err := fetchIndex(ctx, keys, join.Fetch, join.ForeignKey, join.Project)
	if err != nil {
		return nil, errors.Wrapf(err, "join %s", join.Name)
	}

	out := make([]O, 0, len(rows))
	var missing []string
	for _, row := range rows {
		key := join.LocalKey(row)
		p, ok := index[key]
		switch {
		case ok:
			out = append(out, build(row, &p))
		case join.Policy == Left:
			out = append(out, build(row, nil))
		default:
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		metrics.JoinDrops.WithLabelValues(join.Name).Add(float64(len(missing)))
		logger.From(ctx).WithFields(logrus.Fields{
			"join":    join.Name,
			"missing": missing,
		}).Warn("dropping rows that reference missing records")
	}
	return out, nil
}

// JoinMany resolves each row's key list in order. Duplicate keys yield repeated
// projections and keys without a record are skipped.
func JoinMany[L, R, P, O any](ctx context.Context, rows []L, join Many[L, R, P], build func(L, []P) O) ([]O, error) {
	var keys []string
	for _, row := range rows {
		keys = append(keys, join.LocalKeys(row)...)
	}

	index, err := fetchIndex(ctx, keys, join.Fetch, join.ForeignKey, join.Project)
	if err != nil {
		return nil, errors.Wrapf(err, "join %s", join.Name)
	}

	out := make([]O, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		local := join.LocalKeys(row)
		items := make([]P, 0, len(local))
		for _, key := range local {
			if p, ok := index[key]; ok {
				items = append(items, p)
			} else {
				skipped++
			}
		}
		out = append(out, build(row, items))
	}

	if skipped > 0 {
		logger.From(ctx).WithFields(logrus.Fields{
			"join":    join.Name,
			"skipped": skipped,
		}).Debug("omitted references to missing records")
	}
	return out, nil
}

func fetchIndex[R, P any](ctx context.Context, keys []string, fetch FetchFunc[R], foreignKey func(R) string, project func(R) P) (map[string]P, error) {
	keys = unique(keys)
	index := make(map[string]P, len(keys))
	if len(keys) == 0 {
		return index, nil
	}

	records, err := fetch(ctx, keys)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		index[foreignKey(r)] = project(r)
	}
	return index, nil
}

func unique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

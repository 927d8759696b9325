package livequery

import (
	"context"
	"reflect"
	"sort"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"griyapasar/pkg/logger"
)

// RunFunc executes one logical query against the backing store.
type RunFunc func(ctx context.Context, q Query) ([]Document, error)

// Runner applies the degraded-query cascade around a RunFunc. The store
// requires pre-declared composite indexes for combined filter+sort queries;
// while an operator provisions a missing index, queries must keep working in
// degraded form instead of erroring out.
type Runner struct {
	run RunFunc
}

func NewRunner(run RunFunc) *Runner {
	return &Runner{run: run}
}

// Run walks the cascade: primary (filters + ordering), then filters only with
// an in-memory sort, then a bare collection scan filtered and sorted in
// memory. It never returns an error for expected failure classes; the worst
// outcome is an empty ModeFailed result. Only context cancellation
// propagates.
func (r *Runner) Run(ctx context.Context, q Query) (Result, error) {
	docs, err := r.run(ctx, q)
	if err == nil {
		return Result{Docs: nonNil(docs), Mode: ModePrimary}, nil
	}
	if ctx.Err() != nil {
		return Result{Mode: ModeFailed}, ctx.Err()
	}
	if IsPermissionDenied(err) {
		logger.Warn("Query denied on %s, returning empty result: %v", q.Collection, err)
		return Result{Docs: []Document{}, Mode: ModeFailed}, nil
	}
	if !IsMissingIndex(err) {
		logger.Error("Query failed on %s: %v", q.Collection, err)
		return Result{Docs: []Document{}, Mode: ModeFailed}, nil
	}

	logger.LogQueryDegraded(q.Collection, ModeNoOrder.String(), err)
	docs, err = r.run(ctx, q.WithoutOrder())
	if err == nil {
		docs = SortDocs(docs, q.OrderBy, q.Desc)
		return Result{Docs: clip(docs, q.Limit), Mode: ModeNoOrder}, nil
	}
	if ctx.Err() != nil {
		return Result{Mode: ModeFailed}, ctx.Err()
	}
	if !IsMissingIndex(err) {
		logger.Error("Degraded query failed on %s: %v", q.Collection, err)
		return Result{Docs: []Document{}, Mode: ModeFailed}, nil
	}

	logger.LogQueryDegraded(q.Collection, ModeBare.String(), err)
	docs, err = r.run(ctx, q.Bare())
	if err != nil {
		if ctx.Err() != nil {
			return Result{Mode: ModeFailed}, ctx.Err()
		}
		logger.Error("Bare collection scan failed on %s: %v", q.Collection, err)
		return Result{Docs: []Document{}, Mode: ModeFailed}, nil
	}

	docs = FilterDocs(docs, q.Filters)
	docs = SortDocs(docs, q.OrderBy, q.Desc)
	return Result{Docs: clip(docs, q.Limit), Mode: ModeBare, Degraded: true}, nil
}

// IsMissingIndex reports whether err is the store's missing-composite-index
// failure. Firestore signals it as FailedPrecondition.
func IsMissingIndex(err error) bool {
	return status.Code(err) == codes.FailedPrecondition
}

func IsPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied
}

func IsUnavailable(err error) bool {
	return status.Code(err) == codes.Unavailable
}

// FilterDocs applies equality filters in memory, mirroring what the store
// would have done server-side.
func FilterDocs(docs []Document, filters []Filter) []Document {
	if len(filters) == 0 {
		return docs
	}
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		match := true
		for _, f := range filters {
			if !valuesEqual(doc.Data[f.Field], f.Value) {
				match = false
				break
			}
		}
		if match {
			out = append(out, doc)
		}
	}
	return out
}

// SortDocs orders documents by field in memory, reproducing server-side
// ordering. A missing value sorts lowest regardless of direction sense:
// documents without the field come first ascending, last descending.
func SortDocs(docs []Document, field string, desc bool) []Document {
	if field == "" {
		return docs
	}
	out := make([]Document, len(docs))
	copy(out, docs)
	sort.SliceStable(out, func(i, j int) bool {
		less := compareValues(out[i].Data[field], out[j].Data[field]) < 0
		if desc {
			return compareValues(out[j].Data[field], out[i].Data[field]) < 0
		}
		return less
	})
	return out
}

// compareValues orders two field values: missing < bool < number < time <
// string. Within a type group natural ordering applies; Firestore delivers
// timestamps as time.Time so no separate timestamp branch is needed.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch va := a.(type) {
	case nil:
		return 0
	case bool:
		vb := b.(bool)
		if va == vb {
			return 0
		}
		if !va {
			return -1
		}
		return 1
	case time.Time:
		vb := b.(time.Time)
		if va.Before(vb) {
			return -1
		}
		if va.After(vb) {
			return 1
		}
		return 0
	case string:
		vb := b.(string)
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	default:
		fa, fb := toFloat(a), toFloat(b)
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
		return 0
	}
}

func typeRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int32, int64, float32, float64:
		return 2
	case time.Time:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	// Numeric filter values survive a decode round-trip with a different
	// concrete type (int vs int64 vs float64).
	if typeRank(a) == 2 && typeRank(b) == 2 {
		return toFloat(a) == toFloat(b)
	}
	return reflect.DeepEqual(a, b)
}

func clip(docs []Document, limit int) []Document {
	if limit > 0 && len(docs) > limit {
		return docs[:limit]
	}
	return docs
}

func nonNil(docs []Document) []Document {
	if docs == nil {
		return []Document{}
	}
	return docs
}

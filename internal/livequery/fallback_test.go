package livequery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errMissingIndex = status.Error(codes.FailedPrecondition, "The query requires an index.")

func docWith(id string, fields map[string]interface{}) Document {
	return Document{ID: id, Data: fields}
}

func TestRunnerPrimarySuccessSkipsFallback(t *testing.T) {
	calls := 0
	runner := NewRunner(func(ctx context.Context, q Query) ([]Document, error) {
		calls++
		return []Document{docWith("a", nil), docWith("b", nil)}, nil
	})

	result, err := runner.Run(context.Background(), Query{
		Collection: "notifications",
		Filters:    []Filter{{Field: "userId", Value: "u1"}},
		OrderBy:    "createdAt",
		Desc:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "no wasted retries when the primary query succeeds")
	assert.Equal(t, ModePrimary, result.Mode)
	assert.False(t, result.Degraded)
	assert.Len(t, result.Docs, 2)
}

func TestRunnerMissingIndexSortsInMemory(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var queries []Query
	runner := NewRunner(func(ctx context.Context, q Query) ([]Document, error) {
		queries = append(queries, q)
		if q.OrderBy != "" {
			return nil, errMissingIndex
		}
		return []Document{
			docWith("old", map[string]interface{}{"createdAt": base}),
			docWith("new", map[string]interface{}{"createdAt": base.Add(time.Hour)}),
			docWith("mid", map[string]interface{}{"createdAt": base.Add(time.Minute)}),
		}, nil
	})

	result, err := runner.Run(context.Background(), Query{
		Collection: "constructionProjects",
		Filters:    []Filter{{Field: "requesterId", Value: "u1"}},
		OrderBy:    "createdAt",
		Desc:       true,
		Limit:      2,
	})

	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Empty(t, queries[1].OrderBy, "fallback drops the ordering clause")
	assert.Equal(t, queries[0].Filters, queries[1].Filters, "fallback keeps the filters")

	assert.Equal(t, ModeNoOrder, result.Mode)
	assert.False(t, result.Degraded)
	require.Len(t, result.Docs, 2, "limit re-applied after the in-memory sort")
	assert.Equal(t, "new", result.Docs[0].ID)
	assert.Equal(t, "mid", result.Docs[1].ID)
}

func TestRunnerBareScanFiltersInMemory(t *testing.T) {
	var queries []Query
	runner := NewRunner(func(ctx context.Context, q Query) ([]Document, error) {
		queries = append(queries, q)
		if len(q.Filters) > 0 || q.OrderBy != "" {
			return nil, errMissingIndex
		}
		return []Document{
			docWith("p1", map[string]interface{}{"status": "pending", "budget": float64(100)}),
			docWith("p2", map[string]interface{}{"status": "completed", "budget": float64(50)}),
			docWith("p3", map[string]interface{}{"status": "pending", "budget": float64(10)}),
		}, nil
	})

	result, err := runner.Run(context.Background(), Query{
		Collection: "constructionProjects",
		Filters:    []Filter{{Field: "status", Value: "pending"}},
		OrderBy:    "budget",
	})

	require.NoError(t, err)
	require.Len(t, queries, 3, "strictly linear cascade")
	assert.Empty(t, queries[2].Filters)

	assert.Equal(t, ModeBare, result.Mode)
	assert.True(t, result.Degraded, "bare scan results are approximate w.r.t. server-side limits")
	require.Len(t, result.Docs, 2)
	assert.Equal(t, "p3", result.Docs[0].ID)
	assert.Equal(t, "p1", result.Docs[1].ID)
}

func TestRunnerPermissionDeniedReturnsEmpty(t *testing.T) {
	calls := 0
	runner := NewRunner(func(ctx context.Context, q Query) ([]Document, error) {
		calls++
		return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
	})

	result, err := runner.Run(context.Background(), Query{Collection: "notifications"})

	require.NoError(t, err, "permission denial never propagates past the runner")
	assert.Equal(t, 1, calls, "denial is terminal, not retried")
	assert.Equal(t, ModeFailed, result.Mode)
	assert.NotNil(t, result.Docs)
	assert.Empty(t, result.Docs)
}

func TestRunnerUnexpectedErrorGivesUp(t *testing.T) {
	calls := 0
	runner := NewRunner(func(ctx context.Context, q Query) ([]Document, error) {
		calls++
		return nil, status.Error(codes.Unavailable, "backend unavailable")
	})

	result, err := runner.Run(context.Background(), Query{
		Collection: "renovationProjects",
		OrderBy:    "createdAt",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, result.Docs)
	assert.Equal(t, ModeFailed, result.Mode)
}

func TestSortDocsMissingFieldSortsLowest(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		docWith("b", map[string]interface{}{"createdAt": base.Add(time.Hour)}),
		docWith("none", map[string]interface{}{}),
		docWith("a", map[string]interface{}{"createdAt": base}),
	}

	asc := SortDocs(docs, "createdAt", false)
	require.Len(t, asc, 3)
	assert.Equal(t, "none", asc[0].ID, "missing value sorts lowest ascending")
	assert.Equal(t, "a", asc[1].ID)
	assert.Equal(t, "b", asc[2].ID)

	desc := SortDocs(docs, "createdAt", true)
	assert.Equal(t, "b", desc[0].ID)
	assert.Equal(t, "a", desc[1].ID)
	assert.Equal(t, "none", desc[2].ID, "missing value sorts last descending")
}

func TestSortDocsIsStable(t *testing.T) {
	docs := []Document{
		docWith("first", map[string]interface{}{"city": "Bandung"}),
		docWith("second", map[string]interface{}{"city": "Bandung"}),
	}

	sorted := SortDocs(docs, "city", false)
	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
}

func TestFilterDocsNumericEquality(t *testing.T) {
	docs := []Document{
		docWith("match", map[string]interface{}{"bedrooms": int64(3)}),
		docWith("other", map[string]interface{}{"bedrooms": int64(2)}),
	}

	// Decoded documents hold int64 while callers filter with int.
	got := FilterDocs(docs, []Filter{{Field: "bedrooms", Value: 3}})
	require.Len(t, got, 1)
	assert.Equal(t, "match", got[0].ID)
}

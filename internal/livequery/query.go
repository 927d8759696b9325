package livequery

import (
	"fmt"
	"sort"
	"strings"
)

// Filter is a single equality condition on a document field.
type Filter struct {
	Field string
	Value interface{}
}

// Query is a logical query against one collection: equality filters plus an
// optional ordering field. It carries no Firestore types so the fallback
// policy and the subscription manager can be exercised without a live client.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Desc       bool
	Limit      int
}

// Document is one decoded result row.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Mode records which stage of the fallback cascade produced a result.
type Mode int

const (
	ModePrimary Mode = iota // filters + ordering served by the store
	ModeNoOrder             // filters served, sorted in memory
	ModeBare                // bare collection scan, filtered and sorted in memory
	ModeFailed              // gave up; result is empty
)

func (m Mode) String() string {
	switch m {
	case ModePrimary:
		return "primary"
	case ModeNoOrder:
		return "no-order"
	case ModeBare:
		return "bare"
	default:
		return "failed"
	}
}

// Result is a full result-set delivery. Degraded is set when the bare scan
// produced it, meaning server-side limits were not applied.
type Result struct {
	Docs     []Document
	Mode     Mode
	Degraded bool
}

// Key canonicalizes the query for use as a subscription map key. Filter order
// is irrelevant to the query semantics, so filters are sorted by field name.
func (q Query) Key() string {
	parts := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Field, f.Value))
	}
	sort.Strings(parts)

	key := q.Collection + "?" + strings.Join(parts, "&")
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		key += "#" + q.OrderBy + ":" + dir
	}
	if q.Limit > 0 {
		key += fmt.Sprintf("@%d", q.Limit)
	}
	return key
}

// WithoutOrder strips the ordering clause for the first fallback stage. The
// server limit goes with it: without ordering the store would clip an
// arbitrary subset, so the limit is re-applied after the in-memory sort.
func (q Query) WithoutOrder() Query {
	out := q
	out.OrderBy = ""
	out.Desc = false
	out.Limit = 0
	return out
}

// Bare strips filters and ordering for the second fallback stage.
func (q Query) Bare() Query {
	return Query{Collection: q.Collection}
}

package livequery

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"griyapasar/pkg/logger"
)

// Store executes logical queries against Firestore. It is the only file in
// this package that touches the Firestore SDK; the cascade and the manager
// operate on the Query/Document types alone.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) buildQuery(q Query) firestore.Query {
	fq := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

// RunQuery executes one query verbatim, no fallback.
func (s *Store) RunQuery(ctx context.Context, q Query) ([]Document, error) {
	iter := s.buildQuery(q).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return docs, nil
}

// Runner wraps RunQuery in the fallback cascade for one-shot reads.
func (s *Store) Runner() *Runner {
	return NewRunner(s.RunQuery)
}

// Listen opens a snapshot listener and delivers the full current result set
// on every change. The same cascade as Runner applies: a missing-index
// failure degrades the listener query and re-establishes it, reproducing the
// original ordering and filters in memory. Permission denial delivers a
// single empty result and stops. Listen returns when ctx is cancelled or the
// stream is terminally dead.
func (s *Store) Listen(ctx context.Context, q Query, deliver func(Result)) {
	mode := ModePrimary
	current := q

	for {
		err := s.pump(ctx, current, q, mode, deliver)
		if ctx.Err() != nil {
			return
		}

		switch {
		case IsMissingIndex(err) && mode == ModePrimary:
			logger.LogQueryDegraded(q.Collection, ModeNoOrder.String(), err)
			mode = ModeNoOrder
			current = q.WithoutOrder()
		case IsMissingIndex(err) && mode == ModeNoOrder:
			logger.LogQueryDegraded(q.Collection, ModeBare.String(), err)
			mode = ModeBare
			current = q.Bare()
		case IsPermissionDenied(err):
			logger.Warn("Listener denied on %s, delivering empty result: %v", q.Collection, err)
			deliver(Result{Docs: []Document{}, Mode: ModeFailed})
			return
		default:
			logger.Error("Listener failed on %s: %v", q.Collection, err)
			deliver(Result{Docs: []Document{}, Mode: ModeFailed})
			return
		}
	}
}

func (s *Store) pump(ctx context.Context, current, orig Query, mode Mode, deliver func(Result)) error {
	snaps := s.buildQuery(current).Snapshots(ctx)
	defer snaps.Stop()

	for {
		snap, err := snaps.Next()
		if err != nil {
			return err
		}

		docs := []Document{}
		docIter := snap.Documents
		for {
			doc, err := docIter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			docs = append(docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
		}

		switch mode {
		case ModeNoOrder:
			docs = SortDocs(docs, orig.OrderBy, orig.Desc)
			docs = clip(docs, orig.Limit)
		case ModeBare:
			docs = FilterDocs(docs, orig.Filters)
			docs = SortDocs(docs, orig.OrderBy, orig.Desc)
			docs = clip(docs, orig.Limit)
		}

		deliver(Result{Docs: docs, Mode: mode, Degraded: mode == ModeBare})
	}
}

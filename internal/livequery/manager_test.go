package livequery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListener stands in for the Firestore store. It records every Listen
// call and exposes the deliver callback so tests can inject snapshots.
type fakeListener struct {
	mu      sync.Mutex
	calls   int
	deliver func(Result)
	ctx     context.Context
	ready   chan struct{}
}

func newFakeListener() *fakeListener {
	return &fakeListener{ready: make(chan struct{}, 8)}
}

func (f *fakeListener) Listen(ctx context.Context, q Query, deliver func(Result)) {
	f.mu.Lock()
	f.calls++
	f.deliver = deliver
	f.ctx = ctx
	f.mu.Unlock()
	f.ready <- struct{}{}
	<-ctx.Done()
}

func (f *fakeListener) waitReady(t *testing.T) {
	t.Helper()
	select {
	case <-f.ready:
	case <-time.After(time.Second):
		t.Fatal("listener never started")
	}
}

func (f *fakeListener) push(r Result) {
	f.mu.Lock()
	deliver := f.deliver
	f.mu.Unlock()
	deliver(r)
}

// pushIfLive delivers only while the listener context is still live, the way
// the real store goes silent once its context is cancelled.
func (f *fakeListener) pushIfLive(r Result) bool {
	f.mu.Lock()
	ctx, deliver := f.ctx, f.deliver
	f.mu.Unlock()
	if ctx == nil || ctx.Err() != nil || deliver == nil {
		return false
	}
	deliver(r)
	return true
}

func (f *fakeListener) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func receive(t *testing.T, sub *Subscription) Result {
	t.Helper()
	select {
	case r := <-sub.C:
		return r
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return Result{}
	}
}

func TestManagerSharesListenerAcrossSubscribers(t *testing.T) {
	source := newFakeListener()
	m := NewManager(source)
	q := Query{Collection: "notifications", Filters: []Filter{{Field: "userId", Value: "u1"}}}

	sub1 := m.Subscribe(context.Background(), q)
	source.waitReady(t)
	sub2 := m.Subscribe(context.Background(), q)

	assert.Equal(t, 1, source.callCount(), "same logical query shares one store listener")
	assert.Equal(t, 1, m.ActiveStreams())

	source.push(Result{Docs: []Document{docWith("n1", nil)}, Mode: ModePrimary})
	r1 := receive(t, sub1)
	r2 := receive(t, sub2)
	assert.Equal(t, r1.Docs, r2.Docs)

	sub1.Unsubscribe()
	assert.Equal(t, 1, m.ActiveStreams(), "stream survives while a subscriber remains")

	sub2.Unsubscribe()
	assert.Equal(t, 0, m.ActiveStreams(), "last release tears the listener down")

	select {
	case <-source.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("store listener context was not cancelled")
	}
}

// A subscriber arriving while the previous last holder is releasing must end
// up on a live stream, never attached to one that was just torn down.
func TestManagerSubscribeDuringFinalRelease(t *testing.T) {
	for i := 0; i < 100; i++ {
		source := newFakeListener()
		m := NewManager(source)
		q := Query{Collection: "notifications"}

		first := m.Subscribe(context.Background(), q)
		source.waitReady(t)

		done := make(chan struct{})
		go func() {
			first.Unsubscribe()
			close(done)
		}()
		second := m.Subscribe(context.Background(), q)
		<-done

		require.Equal(t, 1, m.ActiveStreams())

		deadline := time.After(time.Second)
		delivered := false
		for !delivered {
			source.pushIfLive(Result{Docs: []Document{{ID: "n1"}}})
			select {
			case r := <-second.C:
				require.Len(t, r.Docs, 1)
				delivered = true
			case <-deadline:
				t.Fatal("subscription attached to a torn-down stream")
			case <-time.After(time.Millisecond):
			}
		}
		second.Unsubscribe()
	}
}

func TestManagerUnsubscribeIsIdempotent(t *testing.T) {
	source := newFakeListener()
	m := NewManager(source)

	sub := m.Subscribe(context.Background(), Query{Collection: "chats"})
	source.waitReady(t)

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, m.ActiveStreams())
}

func TestManagerSubscriptionCannotOutliveContext(t *testing.T) {
	source := newFakeListener()
	m := NewManager(source)

	ctx, cancel := context.WithCancel(context.Background())
	m.Subscribe(ctx, Query{Collection: "properties"})
	source.waitReady(t)

	cancel()

	assert.Eventually(t, func() bool {
		return m.ActiveStreams() == 0
	}, time.Second, 10*time.Millisecond, "owner teardown must release the subscription")
}

func TestManagerConvergesToLatestSnapshot(t *testing.T) {
	source := newFakeListener()
	m := NewManager(source)

	sub := m.Subscribe(context.Background(), Query{Collection: "renovationProjects"})
	source.waitReady(t)

	// Two deliveries before the consumer reads; the second deletes a doc.
	source.push(Result{Docs: []Document{docWith("a", nil), docWith("b", nil), docWith("c", nil)}, Mode: ModePrimary})
	source.push(Result{Docs: []Document{docWith("a", nil), docWith("c", nil)}, Mode: ModePrimary})

	r := receive(t, sub)
	require.Len(t, r.Docs, 2, "consumer sees the latest snapshot, no stale entries")
	assert.Equal(t, "a", r.Docs[0].ID)
	assert.Equal(t, "c", r.Docs[1].ID)
}

func TestManagerReplaysLatestToLateJoiner(t *testing.T) {
	source := newFakeListener()
	m := NewManager(source)
	q := Query{Collection: "notifications"}

	first := m.Subscribe(context.Background(), q)
	source.waitReady(t)
	source.push(Result{Docs: []Document{docWith("n1", nil)}, Mode: ModePrimary})
	receive(t, first)

	late := m.Subscribe(context.Background(), q)
	r := receive(t, late)
	require.Len(t, r.Docs, 1)
	assert.Equal(t, "n1", r.Docs[0].ID)
}

func TestQueryKeyIgnoresFilterOrder(t *testing.T) {
	a := Query{
		Collection: "constructionProjects",
		Filters:    []Filter{{Field: "status", Value: "pending"}, {Field: "providerId", Value: "p1"}},
		OrderBy:    "createdAt",
		Desc:       true,
	}
	b := Query{
		Collection: "constructionProjects",
		Filters:    []Filter{{Field: "providerId", Value: "p1"}, {Field: "status", Value: "pending"}},
		OrderBy:    "createdAt",
		Desc:       true,
	}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), a.WithoutOrder().Key())
}

package livequery

import (
	"context"
	"sync"

	"griyapasar/pkg/logger"
)

// Listener is the push source behind the manager. Store implements it; tests
// substitute fakes.
type Listener interface {
	Listen(ctx context.Context, q Query, deliver func(Result))
}

// Subscription is one consumer's handle on a live query. C carries full
// result sets, latest-wins: if the consumer lags, intermediate snapshots are
// replaced, so the channel always converges to the current state.
type Subscription struct {
	C <-chan Result

	ch      chan Result
	once    sync.Once
	release func(*Subscription)
}

// Unsubscribe detaches the consumer. Idempotent. When the last consumer of a
// query detaches, the underlying store listener is torn down.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.release(s)
	})
}

func (s *Subscription) push(r Result) {
	for {
		select {
		case s.ch <- r:
			return
		default:
			// Drop the stale snapshot; the new one supersedes it.
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

type stream struct {
	query  Query
	cancel context.CancelFunc

	mu   sync.Mutex
	subs map[*Subscription]struct{}
	last *Result
}

func (st *stream) deliver(r Result) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.last = &r
	for sub := range st.subs {
		sub.push(r)
	}
}

// Manager multiplexes live queries: subscriptions are keyed by the canonical
// query, reference-counted, and share one store listener. The listener is
// opened on the first Subscribe for a key and cancelled when the last
// subscriber releases, so a page navigating away cannot leak a server-side
// listener.
type Manager struct {
	source Listener

	mu      sync.Mutex
	streams map[string]*stream
}

func NewManager(source Listener) *Manager {
	return &Manager{
		source:  source,
		streams: make(map[string]*stream),
	}
}

// Subscribe attaches a consumer to the live query. The subscription is bound
// to ctx: when ctx is cancelled the subscription releases itself, so it
// cannot outlive its owning request or view. Late joiners immediately receive
// the latest snapshot already held by the stream.
func (m *Manager) Subscribe(ctx context.Context, q Query) *Subscription {
	key := q.Key()

	sub := &Subscription{ch: make(chan Result, 1)}
	sub.C = sub.ch
	sub.release = func(s *Subscription) {
		m.release(key, s)
	}

	m.mu.Lock()
	st, ok := m.streams[key]
	if !ok {
		sctx, cancel := context.WithCancel(context.Background())
		st = &stream{
			query:  q,
			cancel: cancel,
			subs:   make(map[*Subscription]struct{}),
		}
		m.streams[key] = st
		go m.source.Listen(sctx, q, st.deliver)
		logger.Debug("Live query opened: %s", key)
	}
	// Attach while still holding m.mu: a concurrent release of the last
	// holder must not cancel and drop the stream between lookup and attach,
	// or this subscription would be bound to a dead listener.
	st.mu.Lock()
	st.subs[sub] = struct{}{}
	if st.last != nil {
		sub.push(*st.last)
	}
	st.mu.Unlock()
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Unsubscribe()
	}()

	return sub
}

func (m *Manager) release(key string, sub *Subscription) {
	m.mu.Lock()
	st, ok := m.streams[key]
	if !ok {
		m.mu.Unlock()
		return
	}

	st.mu.Lock()
	delete(st.subs, sub)
	remaining := len(st.subs)
	st.mu.Unlock()

	if remaining == 0 {
		st.cancel()
		delete(m.streams, key)
		logger.Debug("Live query closed: %s", key)
	}
	m.mu.Unlock()
}

// ActiveStreams reports how many distinct live queries are open. Used by the
// health endpoint and by teardown tests.
func (m *Manager) ActiveStreams() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streams)
}

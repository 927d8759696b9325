package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griyapasar/pkg/errors"
)

func TestResolverCachesLookups(t *testing.T) {
	var calls int32
	r := NewDisplayResolver()
	r.RegisterKind("user", func(ctx context.Context, id string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "Budi", nil
	})

	ctx := context.Background()
	assert.Equal(t, "Budi", r.Resolve(ctx, "user", "u1"))
	assert.Equal(t, "Budi", r.Resolve(ctx, "user", "u1"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second resolve must hit the cache")
}

func TestResolverDeduplicatesBatch(t *testing.T) {
	var calls int32
	r := NewDisplayResolver()
	r.RegisterKind("property", func(ctx context.Context, id string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "Rumah " + id, nil
	})

	labels := r.ResolveAll(context.Background(), "property", []string{"p1", "p2", "p1", "p1"})

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "Rumah p1", labels["p1"])
	assert.Equal(t, "Rumah p2", labels["p2"])
}

func TestResolverConcurrentSameIdSingleLookup(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	r := NewDisplayResolver()
	r.RegisterKind("user", func(ctx context.Context, id string) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-started
		return "Siti", nil
	})

	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(context.Background(), "user", "u9")
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(started)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent callers share one in-flight lookup")
	for _, got := range results {
		assert.Equal(t, "Siti", got)
	}
}

func TestResolverMissAndError(t *testing.T) {
	r := NewDisplayResolver()
	r.RegisterKind("user", func(ctx context.Context, id string) (string, error) {
		if id == "gone" {
			return "", errors.NotFound("User", nil)
		}
		return "", errors.Internal("backend down", nil)
	})

	ctx := context.Background()
	assert.Equal(t, LabelNotFound, r.Resolve(ctx, "user", "gone"))
	assert.Equal(t, LabelErrorLoading, r.Resolve(ctx, "user", "broken"))

	// Failures are cached too; the batch never re-issues a known-bad lookup.
	assert.Equal(t, LabelNotFound, r.Resolve(ctx, "user", "gone"))
}

func TestResolverUnknownKind(t *testing.T) {
	r := NewDisplayResolver()
	assert.Equal(t, LabelErrorLoading, r.Resolve(context.Background(), "mystery", "x1"))
}

func TestResolverEmptyID(t *testing.T) {
	r := NewDisplayResolver()
	assert.Equal(t, "", r.Resolve(context.Background(), "user", ""))
}

func TestResolveAsyncSkipsApplyAfterCancel(t *testing.T) {
	release := make(chan struct{})
	r := NewDisplayResolver()
	r.RegisterKind("user", func(ctx context.Context, id string) (string, error) {
		<-release
		return "Late", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	applied := make(chan string, 1)
	r.ResolveAsync(ctx, "user", "u1", func(label string) {
		applied <- label
	})

	cancel()
	close(release)

	select {
	case label := <-applied:
		t.Fatalf("apply ran after cancellation with %q", label)
	case <-time.After(50 * time.Millisecond):
	}

	// The completed lookup still landed in the cache.
	require.Equal(t, "Late", r.Resolve(context.Background(), "user", "u1"))
}

package usecase

import (
	"context"
	"sync"

	"griyapasar/internal/domain/repository"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/logger"
)

const (
	LabelNotFound     = "Not Found"
	LabelErrorLoading = "Error Loading"
)

// LookupFunc resolves one foreign id to a display label.
type LookupFunc func(ctx context.Context, id string) (string, error)

// DisplayResolver turns foreign ids into human-readable labels via point
// lookups. Labels are memoized for the resolver's lifetime (one resolver per
// view), identical ids in flight share a single lookup, a miss resolves to a
// stable "Not Found" label and an error to "Error Loading" — a bad reference
// never fails the whole batch.
type DisplayResolver struct {
	mu       sync.Mutex
	lookups  map[string]LookupFunc
	cache    map[string]string
	inflight map[string]chan struct{}
}

func NewDisplayResolver() *DisplayResolver {
	return &DisplayResolver{
		lookups:  make(map[string]LookupFunc),
		cache:    make(map[string]string),
		inflight: make(map[string]chan struct{}),
	}
}

func (r *DisplayResolver) RegisterKind(kind string, fn LookupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups[kind] = fn
}

// Resolve returns the label for (kind, id), issuing at most one lookup per
// distinct id for the resolver's lifetime.
func (r *DisplayResolver) Resolve(ctx context.Context, kind, id string) string {
	if id == "" {
		return ""
	}
	key := kind + "/" + id

	for {
		r.mu.Lock()
		if label, ok := r.cache[key]; ok {
			r.mu.Unlock()
			return label
		}
		if wait, ok := r.inflight[key]; ok {
			r.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return LabelErrorLoading
			}
		}

		done := make(chan struct{})
		r.inflight[key] = done
		fn := r.lookups[kind]
		r.mu.Unlock()

		label := r.lookup(ctx, fn, kind, id)

		r.mu.Lock()
		r.cache[key] = label
		delete(r.inflight, key)
		close(done)
		r.mu.Unlock()
		return label
	}
}

func (r *DisplayResolver) lookup(ctx context.Context, fn LookupFunc, kind, id string) string {
	if fn == nil {
		logger.Warn("No lookup registered for kind %s", kind)
		return LabelErrorLoading
	}
	label, err := fn(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return LabelNotFound
		}
		logger.Warn("Lookup failed for %s/%s: %v", kind, id, err)
		return LabelErrorLoading
	}
	if label == "" {
		return LabelNotFound
	}
	return label
}

// ResolveAll resolves a batch, deduplicating identical ids.
func (r *DisplayResolver) ResolveAll(ctx context.Context, kind string, ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, done := out[id]; done {
			continue
		}
		out[id] = r.Resolve(ctx, kind, id)
	}
	return out
}

// ResolveAsync patches the label in after the caller has already rendered a
// placeholder. A lookup still in flight when ctx is cancelled completes into
// the cache but apply is never invoked, so nothing writes into a torn-down
// view.
func (r *DisplayResolver) ResolveAsync(ctx context.Context, kind, id string, apply func(label string)) {
	go func() {
		label := r.Resolve(context.WithoutCancel(ctx), kind, id)
		if ctx.Err() != nil {
			return
		}
		apply(label)
	}()
}

// ResolverFactory builds a fresh resolver for one view. Labels are memoized
// per view only, so renames are picked up on the next request and a transient
// "Error Loading" is never cached across views.
type ResolverFactory func() *DisplayResolver

// EntityResolverFactory returns a factory wiring the standard lookup kinds.
func EntityResolverFactory(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	providerRepo repository.ProviderRepository,
) ResolverFactory {
	return func() *DisplayResolver {
		return NewEntityResolver(userRepo, propertyRepo, providerRepo)
	}
}

// NewEntityResolver wires the standard lookup kinds against the repositories.
func NewEntityResolver(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	providerRepo repository.ProviderRepository,
) *DisplayResolver {
	r := NewDisplayResolver()

	r.RegisterKind("user", func(ctx context.Context, id string) (string, error) {
		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return user.DisplayName, nil
	})

	r.RegisterKind("property", func(ctx context.Context, id string) (string, error) {
		property, err := propertyRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return property.Title, nil
	})

	r.RegisterKind("serviceProvider", func(ctx context.Context, id string) (string, error) {
		profile, err := providerRepo.GetByID(ctx, "service", id)
		if err != nil {
			return "", err
		}
		return profile.DisplayLabel(), nil
	})

	r.RegisterKind("constructionProvider", func(ctx context.Context, id string) (string, error) {
		profile, err := providerRepo.GetByID(ctx, "construction", id)
		if err != nil {
			return "", err
		}
		return profile.DisplayLabel(), nil
	})

	return r
}

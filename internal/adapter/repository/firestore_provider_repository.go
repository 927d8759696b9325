package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/livequery"
	"griyapasar/pkg/errors"
)

type firestoreProviderRepository struct {
	client *firestore.Client
	runner *livequery.Runner
}

func NewFirestoreProviderRepository(client *firestore.Client, store *livequery.Store) repository.ProviderRepository {
	return &firestoreProviderRepository{
		client: client,
		runner: store.Runner(),
	}
}

func providerCollection(kind string) string {
	if kind == entity.ProviderKindConstruction {
		return "constructionProviders"
	}
	return "serviceProviders"
}

func (r *firestoreProviderRepository) Create(ctx context.Context, profile *entity.ProviderProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.client.Collection(providerCollection(profile.Kind)).Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create provider profile", err)
	}
	return nil
}

func (r *firestoreProviderRepository) GetByID(ctx context.Context, kind, id string) (*entity.ProviderProfile, error) {
	doc, err := r.client.Collection(providerCollection(kind)).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Provider profile", err)
		}
		return nil, errors.Internal("Failed to get provider profile", err)
	}

	// Decode through the normalizer: old documents use legacy field aliases.
	return entity.NormalizeProvider(doc.Ref.ID, kind, doc.Data()), nil
}

func (r *firestoreProviderRepository) GetByOwner(ctx context.Context, kind, ownerID string) (*entity.ProviderProfile, error) {
	for _, field := range []string{"ownerId", "userId"} {
		iter := r.client.Collection(providerCollection(kind)).Where(field, "==", ownerID).Limit(1).Documents(ctx)
		doc, err := iter.Next()
		iter.Stop()
		if err == iterator.Done {
			continue
		}
		if err != nil {
			return nil, errors.Internal("Failed to query provider profile", err)
		}
		return entity.NormalizeProvider(doc.Ref.ID, kind, doc.Data()), nil
	}
	return nil, errors.NotFound("Provider profile", nil)
}

func (r *firestoreProviderRepository) Update(ctx context.Context, profile *entity.ProviderProfile) error {
	profile.UpdatedAt = time.Now()
	_, err := r.client.Collection(providerCollection(profile.Kind)).Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to update provider profile", err)
	}
	return nil
}

func (r *firestoreProviderRepository) Delete(ctx context.Context, kind, id string) error {
	_, err := r.client.Collection(providerCollection(kind)).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete provider profile", err)
	}
	return nil
}

func (r *firestoreProviderRepository) SetApproval(ctx context.Context, kind, id string, approved bool) error {
	_, err := r.client.Collection(providerCollection(kind)).Doc(id).Update(ctx, []firestore.Update{
		{Path: "approved", Value: approved},
		{Path: "active", Value: approved},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update provider approval", err)
	}
	return nil
}

func (r *firestoreProviderRepository) ListApproved(ctx context.Context, kind, skill string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	return r.list(ctx, kind, []livequery.Filter{
		{Field: "approved", Value: true},
		{Field: "active", Value: true},
	}, skill, limit, offset)
}

func (r *firestoreProviderRepository) ListPending(ctx context.Context, kind string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	return r.list(ctx, kind, []livequery.Filter{
		{Field: "approved", Value: false},
	}, "", limit, offset)
}

func (r *firestoreProviderRepository) list(ctx context.Context, kind string, filters []livequery.Filter, skill string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	result, err := r.runner.Run(ctx, livequery.Query{
		Collection: providerCollection(kind),
		Filters:    filters,
		OrderBy:    "createdAt",
		Desc:       true,
	})
	if err != nil {
		return nil, 0, false, err
	}

	profiles := make([]*entity.ProviderProfile, 0, len(result.Docs))
	for _, doc := range result.Docs {
		p := entity.NormalizeProvider(doc.ID, kind, doc.Data)
		if skill != "" && !hasSkill(p, skill) {
			continue
		}
		profiles = append(profiles, p)
	}

	total := int64(len(profiles))
	profiles = page(profiles, limit, offset)
	return profiles, total, result.Degraded, nil
}

func hasSkill(p *entity.ProviderProfile, skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

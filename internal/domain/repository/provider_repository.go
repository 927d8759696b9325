package repository

import (
	"context"

	"griyapasar/internal/domain/entity"
)

// ProviderRepository serves both provider collections; kind selects between
// serviceProviders and constructionProviders.
type ProviderRepository interface {
	Create(ctx context.Context, profile *entity.ProviderProfile) error
	GetByID(ctx context.Context, kind, id string) (*entity.ProviderProfile, error)
	GetByOwner(ctx context.Context, kind, ownerID string) (*entity.ProviderProfile, error)
	Update(ctx context.Context, profile *entity.ProviderProfile) error
	Delete(ctx context.Context, kind, id string) error
	SetApproval(ctx context.Context, kind, id string, approved bool) error

	// ListApproved returns approved+active profiles ordered by creation time.
	// The degraded flag is set when the result came from the in-memory
	// query fallback.
	ListApproved(ctx context.Context, kind, skill string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error)
	ListPending(ctx context.Context, kind string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error)
}

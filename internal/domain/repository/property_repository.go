package repository

import (
	"context"

	"griyapasar/internal/domain/entity"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	// List combines equality filters with an ordering field ("price_asc",
	// "createdAt_desc", ...). The degraded flag marks fallback results.
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Property, int64, bool, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, int64, error)
}

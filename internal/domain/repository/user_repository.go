package repository

import (
	"context"

	"griyapasar/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetRole(ctx context.Context, id, role string) error
	AddFavorite(ctx context.Context, userID, propertyID string) error
	RemoveFavorite(ctx context.Context, userID, propertyID string) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error)
}

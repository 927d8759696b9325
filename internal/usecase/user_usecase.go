package usecase

import (
	"context"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, propertyRepo repository.PropertyRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		firebaseAuth: firebaseAuth,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// VerificationStatus reads the live email-verified flag from the auth
// provider instead of the cached profile document.
func (uc *UserUseCase) VerificationStatus(ctx context.Context, userID string) (bool, error) {
	return uc.firebaseAuth.IsEmailVerified(ctx, userID)
}

// UpdatePassword verifies the current password before writing the new one.
func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if _, err := uc.firebaseAuth.SignInWithEmailPassword(user.Email, currentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}

type UpdateProfileInput struct {
	DisplayName string
	Phone       string
	PhotoURL    string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor rules.Actor, userID string, input UpdateProfileInput) (*entity.User, error) {
	if !rules.CanWriteUser(actor, userID) {
		return nil, errors.Forbidden("Cannot modify another user's profile", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.PhotoURL != "" {
		user.PhotoURL = input.PhotoURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) UpdateNotifyPrefs(ctx context.Context, userID string, prefs entity.NotifyPrefs) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.NotifyPrefs = prefs
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) AddFavorite(ctx context.Context, userID, propertyID string) error {
	// The favorite must point at a live property.
	if _, err := uc.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return err
	}
	return uc.userRepo.AddFavorite(ctx, userID, propertyID)
}

func (uc *UserUseCase) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	return uc.userRepo.RemoveFavorite(ctx, userID, propertyID)
}

func (uc *UserUseCase) ListFavorites(ctx context.Context, userID string) ([]*entity.Property, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	properties := make([]*entity.Property, 0, len(user.Favorites))
	for _, propertyID := range user.Favorites {
		property, err := uc.propertyRepo.GetByID(ctx, propertyID)
		if err != nil {
			// A deleted listing quietly drops out of the favorites view.
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}

func (uc *UserUseCase) SetRole(ctx context.Context, actor rules.Actor, userID, role string) error {
	if !actor.IsAdmin() {
		return errors.Forbidden("Only admins can change roles", nil)
	}
	switch role {
	case entity.RoleUser, entity.RoleRenovator, entity.RoleConstructor, entity.RoleAdmin:
	default:
		return errors.BadRequest("Unknown role: "+role, nil)
	}
	return uc.userRepo.SetRole(ctx, userID, role)
}

func (uc *UserUseCase) ListUsers(ctx context.Context, actor rules.Actor, role string, limit, offset int) ([]*entity.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errors.Forbidden("Only admins can list users", nil)
	}

	filter := make(map[string]interface{})
	if role != "" {
		filter["role"] = role
	}
	return uc.userRepo.List(ctx, filter, limit, offset)
}

package usecase

import (
	"context"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
)

type ProviderUseCase struct {
	providerRepo repository.ProviderRepository
	userRepo     repository.UserRepository
	notifier     *NotificationUseCase
}

func NewProviderUseCase(
	providerRepo repository.ProviderRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *ProviderUseCase {
	return &ProviderUseCase{
		providerRepo: providerRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

type RegisterProviderInput struct {
	Kind          string   `json:"kind" validate:"required,oneof=service construction"`
	CompanyName   string   `json:"company_name" validate:"required"`
	ContactName   string   `json:"contact_name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required"`
	City          string   `json:"city"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
	PortfolioURLs []string `json:"portfolio_urls"`
	LicenseURLs   []string `json:"license_urls"`
}

// Register creates a provider profile for the calling user. New profiles are
// inactive in the catalog until an admin approves them.
func (uc *ProviderUseCase) Register(ctx context.Context, actor rules.Actor, input RegisterProviderInput) (*entity.ProviderProfile, error) {
	existing, err := uc.providerRepo.GetByOwner(ctx, input.Kind, actor.UID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("You already have a provider profile of this kind")
	}

	profile := &entity.ProviderProfile{
		OwnerID:       actor.UID,
		Kind:          input.Kind,
		CompanyName:   input.CompanyName,
		ContactName:   input.ContactName,
		Email:         input.Email,
		Phone:         input.Phone,
		City:          input.City,
		Bio:           input.Bio,
		Skills:        input.Skills,
		PortfolioURLs: input.PortfolioURLs,
		LicenseURLs:   input.LicenseURLs,
		Approved:      false,
		Active:        true,
	}
	if err := uc.providerRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProviderUseCase) GetByID(ctx context.Context, kind, id string) (*entity.ProviderProfile, error) {
	return uc.providerRepo.GetByID(ctx, kind, id)
}

func (uc *ProviderUseCase) GetMine(ctx context.Context, actor rules.Actor, kind string) (*entity.ProviderProfile, error) {
	return uc.providerRepo.GetByOwner(ctx, kind, actor.UID)
}

type UpdateProviderInput struct {
	CompanyName   string   `json:"company_name"`
	ContactName   string   `json:"contact_name"`
	Phone         string   `json:"phone"`
	City          string   `json:"city"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
	PortfolioURLs []string `json:"portfolio_urls"`
	LicenseURLs   []string `json:"license_urls"`
	Active        *bool    `json:"active"`
}

func (uc *ProviderUseCase) Update(ctx context.Context, actor rules.Actor, kind, id string, input UpdateProviderInput) (*entity.ProviderProfile, error) {
	profile, err := uc.providerRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !rules.CanWriteProvider(actor, profile.OwnerID) {
		return nil, errors.Forbidden("You don't have permission to update this profile", nil)
	}

	if input.CompanyName != "" {
		profile.CompanyName = input.CompanyName
	}
	if input.ContactName != "" {
		profile.ContactName = input.ContactName
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.City != "" {
		profile.City = input.City
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.Skills != nil {
		profile.Skills = input.Skills
	}
	if input.PortfolioURLs != nil {
		profile.PortfolioURLs = input.PortfolioURLs
	}
	if input.LicenseURLs != nil {
		profile.LicenseURLs = input.LicenseURLs
	}
	if input.Active != nil {
		profile.Active = *input.Active
	}

	if err := uc.providerRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProviderUseCase) Delete(ctx context.Context, actor rules.Actor, kind, id string) error {
	profile, err := uc.providerRepo.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if !rules.CanWriteProvider(actor, profile.OwnerID) {
		return errors.Forbidden("You don't have permission to delete this profile", nil)
	}
	return uc.providerRepo.Delete(ctx, kind, id)
}

// ListApproved is the public catalog: approved and active profiles only,
// optionally filtered by skill.
func (uc *ProviderUseCase) ListApproved(ctx context.Context, kind, skill string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	return uc.providerRepo.ListApproved(ctx, kind, skill, limit, offset)
}

func (uc *ProviderUseCase) ListPending(ctx context.Context, actor rules.Actor, kind string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	if !actor.IsAdmin() {
		return nil, 0, false, errors.Forbidden("Admin access required", nil)
	}
	return uc.providerRepo.ListPending(ctx, kind, limit, offset)
}

// SetApproval flips the admin approval flag. Approval grants the owning user
// the provider role and notifies them; rejection only notifies.
func (uc *ProviderUseCase) SetApproval(ctx context.Context, actor rules.Actor, kind, id string, approved bool) (*entity.ProviderProfile, error) {
	if !rules.CanApproveProvider(actor) {
		return nil, errors.Forbidden("Admin access required", nil)
	}

	profile, err := uc.providerRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := uc.providerRepo.SetApproval(ctx, kind, id, approved); err != nil {
		return nil, err
	}
	profile.Approved = approved

	if approved && profile.OwnerID != "" {
		role := entity.RoleConstructor
		if profile.Kind == entity.ProviderKindService {
			role = entity.RoleRenovator
		}
		if err := uc.userRepo.SetRole(ctx, profile.OwnerID, role); err != nil {
			return nil, err
		}
		uc.notifier.Notify(ctx, profile.OwnerID,
			"Profile approved",
			"Your provider profile "+profile.DisplayLabel()+" has been approved and is now listed.",
			"provider_approval", "/providers/"+profile.ID)
	} else if profile.OwnerID != "" {
		uc.notifier.Notify(ctx, profile.OwnerID,
			"Profile not approved",
			"Your provider profile "+profile.DisplayLabel()+" was not approved.",
			"provider_approval", "/providers/"+profile.ID)
	}
	return profile, nil
}

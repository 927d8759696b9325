package usecase

import (
	"context"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/logger"
)

type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	newResolver  ResolverFactory
}

func NewPropertyUseCase(propertyRepo repository.PropertyRepository, newResolver ResolverFactory) *PropertyUseCase {
	return &PropertyUseCase{
		propertyRepo: propertyRepo,
		newResolver:  newResolver,
	}
}

type CreatePropertyInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=house apartment land commercial"`
	ListingType string  `json:"listing_type" validate:"required,oneof=rent sale"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	City        string  `json:"city" validate:"required"`
	Address     string  `json:"address"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int     `json:"bathrooms" validate:"gte=0"`
	AreaSqm     float64 `json:"area_sqm" validate:"gte=0"`
}

func (uc *PropertyUseCase) Create(ctx context.Context, actor rules.Actor, input CreatePropertyInput) (*entity.Property, error) {
	property := &entity.Property{
		OwnerID:     actor.UID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		ListingType: input.ListingType,
		Price:       input.Price,
		City:        input.City,
		Address:     input.Address,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		AreaSqm:     input.AreaSqm,
		Status:      "active",
	}
	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// PropertyDetail decorates a listing with the owner's display label so the
// detail page never renders a bare document id.
type PropertyDetail struct {
	*entity.Property
	OwnerLabel string `json:"owner_label"`
}

func (uc *PropertyUseCase) GetDetail(ctx context.Context, id string) (*PropertyDetail, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.IncrementViews(ctx, id); err != nil {
		// View counting is best effort.
		logger.Warn("Failed to increment views for property %s: %v", id, err)
	}

	return &PropertyDetail{
		Property:   property,
		OwnerLabel: uc.newResolver().Resolve(ctx, "user", property.OwnerID),
	}, nil
}

type UpdatePropertyInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	AreaSqm     *float64 `json:"area_sqm"`
	Status      string   `json:"status"`
}

func (uc *PropertyUseCase) Update(ctx context.Context, actor rules.Actor, id string, input UpdatePropertyInput) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rules.CanWriteProperty(actor, property.OwnerID) {
		return nil, errors.Forbidden("You don't have permission to update this property", nil)
	}

	if input.Title != "" {
		property.Title = input.Title
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.City != "" {
		property.City = input.City
	}
	if input.Address != "" {
		property.Address = input.Address
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.AreaSqm != nil {
		property.AreaSqm = *input.AreaSqm
	}
	if input.Status != "" {
		if input.Status != "active" && input.Status != "inactive" && input.Status != "sold" && input.Status != "rented" {
			return nil, errors.BadRequest("Invalid property status", nil)
		}
		property.Status = input.Status
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (uc *PropertyUseCase) Delete(ctx context.Context, actor rules.Actor, id string) error {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rules.CanWriteProperty(actor, property.OwnerID) {
		return errors.Forbidden("You don't have permission to delete this property", nil)
	}
	return uc.propertyRepo.SoftDelete(ctx, id)
}

type ListPropertiesParams struct {
	Type        string
	ListingType string
	City        string
	Sort        string
	Limit       int
	Offset      int
}

// List serves the browse page. Results may come from a degraded in-memory
// fallback while an index is still building; that is surfaced to the client
// so it can show a staleness hint instead of failing.
func (uc *PropertyUseCase) List(ctx context.Context, params ListPropertiesParams) ([]*entity.Property, int64, bool, error) {
	filter := map[string]interface{}{}
	if params.Type != "" {
		filter["type"] = params.Type
	}
	if params.ListingType != "" {
		filter["listingType"] = params.ListingType
	}
	if params.City != "" {
		filter["city"] = params.City
	}
	return uc.propertyRepo.List(ctx, filter, params.Sort, params.Limit, params.Offset)
}

func (uc *PropertyUseCase) ListMine(ctx context.Context, actor rules.Actor, limit, offset int) ([]*entity.Property, int64, error) {
	return uc.propertyRepo.ListByOwner(ctx, actor.UID, limit, offset)
}

package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/livequery"
	"griyapasar/pkg/errors"
)

type firestorePropertyRepository struct {
	client *firestore.Client
	runner *livequery.Runner
}

func NewFirestorePropertyRepository(client *firestore.Client, store *livequery.Store) repository.PropertyRepository {
	return &firestorePropertyRepository{
		client: client,
		runner: store.Runner(),
	}
}

func (r *firestorePropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	if property.ID == "" {
		doc := r.client.Collection("properties").NewDoc()
		property.ID = doc.ID
	}

	now := time.Now()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	property.UpdatedAt = now
	if property.Status == "" {
		property.Status = "active"
	}

	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to create property", err)
	}
	return nil
}

func (r *firestorePropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	doc, err := r.client.Collection("properties").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Property", err)
		}
		return nil, errors.Internal("Failed to get property", err)
	}

	var property entity.Property
	if err := doc.DataTo(&property); err != nil {
		return nil, errors.Internal("Failed to parse property data", err)
	}
	return &property, nil
}

func (r *firestorePropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now()
	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to update property", err)
	}
	return nil
}

func (r *firestorePropertyRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("properties").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: "deleted"},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to soft delete property", err)
	}
	return nil
}

func (r *firestorePropertyRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("properties").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment property views", err)
	}
	return nil
}

// List combines caller filters with an ordering field. Filter+sort
// combinations need composite indexes, so the query goes through the
// degraded cascade instead of straight to the client.
func (r *firestorePropertyRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Property, int64, bool, error) {
	filters := []livequery.Filter{{Field: "status", Value: "active"}}
	for key, value := range filter {
		filters = append(filters, livequery.Filter{Field: key, Value: value})
	}

	orderBy := "createdAt"
	desc := true
	if sort != "" {
		parts := strings.Split(sort, "_")
		orderBy = parts[0]
		desc = len(parts) > 1 && parts[1] == "desc"
	}

	result, err := r.runner.Run(ctx, livequery.Query{
		Collection: "properties",
		Filters:    filters,
		OrderBy:    orderBy,
		Desc:       desc,
	})
	if err != nil {
		return nil, 0, false, err
	}

	properties := make([]*entity.Property, 0, len(result.Docs))
	for _, doc := range result.Docs {
		properties = append(properties, docToProperty(doc))
	}

	total := int64(len(properties))
	properties = page(properties, limit, offset)
	return properties, total, result.Degraded, nil
}

func (r *firestorePropertyRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, int64, error) {
	result, err := r.runner.Run(ctx, livequery.Query{
		Collection: "properties",
		Filters:    []livequery.Filter{{Field: "ownerId", Value: ownerID}},
		OrderBy:    "createdAt",
		Desc:       true,
	})
	if err != nil {
		return nil, 0, err
	}

	properties := make([]*entity.Property, 0, len(result.Docs))
	for _, doc := range result.Docs {
		p := docToProperty(doc)
		if p.Status == "deleted" {
			continue
		}
		properties = append(properties, p)
	}

	total := int64(len(properties))
	properties = page(properties, limit, offset)
	return properties, total, nil
}

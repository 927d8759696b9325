package repository

import (
	"time"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/livequery"
)

// Decoders from livequery documents to entities. Fallback query results
// arrive as raw field maps, not snapshots, so DataTo is not available; these
// are the read-boundary equivalents.

func getString(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

func getBool(data map[string]interface{}, key string) bool {
	v, _ := data[key].(bool)
	return v
}

func getFloat(data map[string]interface{}, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func getInt(data map[string]interface{}, key string) int {
	return int(getFloat(data, key))
}

func getInt64(data map[string]interface{}, key string) int64 {
	return int64(getFloat(data, key))
}

func getTime(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func getStrings(data map[string]interface{}, key string) []string {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func docToProject(kind string, doc livequery.Document) *entity.Project {
	return &entity.Project{
		ID:          doc.ID,
		Kind:        kind,
		RequesterID: getString(doc.Data, "requesterId"),
		PropertyID:  getString(doc.Data, "propertyId"),
		ProviderID:  getString(doc.Data, "providerId"),
		Title:       getString(doc.Data, "title"),
		Description: getString(doc.Data, "description"),
		Budget:      getFloat(doc.Data, "budget"),
		StartDate:   getTime(doc.Data, "startDate"),
		EndDate:     getTime(doc.Data, "endDate"),
		Status:      getString(doc.Data, "status"),
		Version:     getInt64(doc.Data, "version"),
		CreatedAt:   getTime(doc.Data, "createdAt"),
		UpdatedAt:   getTime(doc.Data, "updatedAt"),
	}
}

func docToProperty(doc livequery.Document) *entity.Property {
	p := &entity.Property{
		ID:          doc.ID,
		OwnerID:     getString(doc.Data, "ownerId"),
		Title:       getString(doc.Data, "title"),
		Description: getString(doc.Data, "description"),
		Type:        getString(doc.Data, "type"),
		ListingType: getString(doc.Data, "listingType"),
		Price:       getFloat(doc.Data, "price"),
		City:        getString(doc.Data, "city"),
		Address:     getString(doc.Data, "address"),
		Bedrooms:    getInt(doc.Data, "bedrooms"),
		Bathrooms:   getInt(doc.Data, "bathrooms"),
		AreaSqm:     getFloat(doc.Data, "areaSqm"),
		Status:      getString(doc.Data, "status"),
		Views:       getInt(doc.Data, "views"),
		CreatedAt:   getTime(doc.Data, "createdAt"),
		UpdatedAt:   getTime(doc.Data, "updatedAt"),
	}

	if raw, ok := doc.Data["images"].([]interface{}); ok {
		for _, item := range raw {
			img, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p.Images = append(p.Images, entity.PropertyImage{
				ID:           getString(img, "id"),
				URL:          getString(img, "url"),
				DisplayOrder: getInt(img, "displayOrder"),
			})
		}
	}

	return p
}

func docToNotification(doc livequery.Document) *entity.Notification {
	return &entity.Notification{
		ID:        doc.ID,
		UserID:    getString(doc.Data, "userId"),
		Title:     getString(doc.Data, "title"),
		Message:   getString(doc.Data, "message"),
		Type:      getString(doc.Data, "type"),
		Link:      getString(doc.Data, "link"),
		Read:      getBool(doc.Data, "read"),
		CreatedAt: getTime(doc.Data, "createdAt"),
	}
}

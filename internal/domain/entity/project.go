package entity

import (
	"time"
)

const (
	ProjectKindConstruction = "construction"
	ProjectKindRenovation   = "renovation"
)

// Project is a construction or renovation request. The two kinds live in
// separate collections (constructionProjects, renovationProjects) but share
// one shape.
type Project struct {
	ID          string `json:"id" firestore:"id"`
	Kind        string `json:"kind" firestore:"kind"`
	RequesterID string `json:"requester_id" firestore:"requesterId"`
	PropertyID  string `json:"property_id,omitempty" firestore:"propertyId,omitempty"`
	ProviderID  string `json:"provider_id,omitempty" firestore:"providerId,omitempty"`

	// ProviderOwnerID is the auth uid behind the assigned provider profile,
	// denormalized at assignment so status authorization needs no extra read.
	ProviderOwnerID string `json:"provider_owner_id,omitempty" firestore:"providerOwnerId,omitempty"`

	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Budget      float64 `json:"budget" firestore:"budget"`

	StartDate time.Time `json:"start_date" firestore:"startDate"`
	EndDate   time.Time `json:"end_date" firestore:"endDate"`

	Status string `json:"status" firestore:"status"`

	// Version guards status writes against concurrent double-transitions.
	// Bumped on every status change inside the same transaction.
	Version int64 `json:"version" firestore:"version"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ProjectUpdate is one entry of the append-only status log kept as a
// subcollection under the project document.
type ProjectUpdate struct {
	ID        string    `json:"id" firestore:"id"`
	ProjectID string    `json:"project_id" firestore:"projectId"`
	Status    string    `json:"status" firestore:"status"`
	Note      string    `json:"note,omitempty" firestore:"note,omitempty"`
	By        string    `json:"by" firestore:"by"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Collection maps the project kind to its Firestore collection name.
func (p *Project) Collection() string {
	if p.Kind == ProjectKindRenovation {
		return "renovationProjects"
	}
	return "constructionProjects"
}

func ProjectCollection(kind string) string {
	if kind == ProjectKindRenovation {
		return "renovationProjects"
	}
	return "constructionProjects"
}

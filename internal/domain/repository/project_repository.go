package repository

import (
	"context"

	"griyapasar/internal/domain/entity"
)

// StatusChange is the payload of one workflow step.
type StatusChange struct {
	Next            string
	Note            string
	By              string
	ExpectedVersion int64
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, kind, id string) (*entity.Project, error)
	AssignProvider(ctx context.Context, kind, id, providerID, providerOwnerID string) error

	// UpdateStatus applies one transition atomically: status, server-assigned
	// update timestamp and version bump in a single transactional write. A
	// version mismatch fails with CONFLICT and leaves the prior state
	// authoritative.
	UpdateStatus(ctx context.Context, kind, id string, change StatusChange) error

	ListUpdates(ctx context.Context, kind, id string) ([]*entity.ProjectUpdate, error)

	ListByRequester(ctx context.Context, kind, requesterID string, limit, offset int) ([]*entity.Project, int64, bool, error)
	ListByProvider(ctx context.Context, kind, providerID string, limit, offset int) ([]*entity.Project, int64, bool, error)
	ListByStatus(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Project, int64, bool, error)
}

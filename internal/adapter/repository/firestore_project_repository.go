package repository

import (
	"context"
	stderrors "errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/livequery"
	"griyapasar/pkg/errors"
)

type firestoreProjectRepository struct {
	client *firestore.Client
	runner *livequery.Runner
}

func NewFirestoreProjectRepository(client *firestore.Client, store *livequery.Store) repository.ProjectRepository {
	return &firestoreProjectRepository{
		client: client,
		runner: store.Runner(),
	}
}

func (r *firestoreProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	project.Status = entity.StatusPending
	project.Version = 1

	_, err := r.client.Collection(project.Collection()).Doc(project.ID).Set(ctx, project)
	if err != nil {
		return errors.Internal("Failed to create project", err)
	}
	return nil
}

func (r *firestoreProjectRepository) GetByID(ctx context.Context, kind, id string) (*entity.Project, error) {
	doc, err := r.client.Collection(entity.ProjectCollection(kind)).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to get project", err)
	}

	var project entity.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, errors.Internal("Failed to parse project data", err)
	}
	project.Kind = kind
	return &project, nil
}

func (r *firestoreProjectRepository) AssignProvider(ctx context.Context, kind, id, providerID, providerOwnerID string) error {
	_, err := r.client.Collection(entity.ProjectCollection(kind)).Doc(id).Update(ctx, []firestore.Update{
		{Path: "providerId", Value: providerID},
		{Path: "providerOwnerId", Value: providerOwnerID},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to assign provider", err)
	}
	return nil
}

// UpdateStatus runs the transition inside a transaction: the current status
// and version are re-read, the version is checked against the caller's
// expectation, and the status write, the server update timestamp, the version
// bump and the append-only log entry all commit together. Two concurrent
// transitions cannot both win; the loser gets CONFLICT and the prior state
// stays authoritative.
func (r *firestoreProjectRepository) UpdateStatus(ctx context.Context, kind, id string, change repository.StatusChange) error {
	ref := r.client.Collection(entity.ProjectCollection(kind)).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Project", err)
			}
			return err
		}

		data := doc.Data()
		current, _ := data["status"].(string)
		version, _ := data["version"].(int64)

		if change.ExpectedVersion != 0 && version != change.ExpectedVersion {
			return errors.Conflict("Project was modified concurrently, reload and retry")
		}
		if !entity.CanTransition(current, change.Next) {
			return errors.Conflict("Status transition from " + current + " to " + change.Next + " is not allowed")
		}

		if err := tx.Update(ref, []firestore.Update{
			{Path: "status", Value: change.Next},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
			{Path: "version", Value: firestore.Increment(1)},
		}); err != nil {
			return err
		}

		updateRef := ref.Collection("updates").Doc(uuid.New().String())
		return tx.Create(updateRef, map[string]interface{}{
			"projectId": id,
			"status":    change.Next,
			"note":      change.Note,
			"by":        change.By,
			"createdAt": firestore.ServerTimestamp,
		})
	})

	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return appErr
		}
		return errors.Internal("Failed to update project status", err)
	}
	return nil
}

func (r *firestoreProjectRepository) ListUpdates(ctx context.Context, kind, id string) ([]*entity.ProjectUpdate, error) {
	iter := r.client.Collection(entity.ProjectCollection(kind)).Doc(id).
		Collection("updates").OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var updates []*entity.ProjectUpdate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate project updates", err)
		}

		var update entity.ProjectUpdate
		if err := doc.DataTo(&update); err != nil {
			return nil, errors.Internal("Failed to parse project update", err)
		}
		update.ID = doc.Ref.ID
		updates = append(updates, &update)
	}
	return updates, nil
}

func (r *firestoreProjectRepository) ListByRequester(ctx context.Context, kind, requesterID string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return r.list(ctx, kind, []livequery.Filter{{Field: "requesterId", Value: requesterID}}, limit, offset)
}

func (r *firestoreProjectRepository) ListByProvider(ctx context.Context, kind, providerID string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return r.list(ctx, kind, []livequery.Filter{{Field: "providerId", Value: providerID}}, limit, offset)
}

func (r *firestoreProjectRepository) ListByStatus(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	var filters []livequery.Filter
	if status != "" {
		filters = append(filters, livequery.Filter{Field: "status", Value: status})
	}
	return r.list(ctx, kind, filters, limit, offset)
}

func (r *firestoreProjectRepository) list(ctx context.Context, kind string, filters []livequery.Filter, limit, offset int) ([]*entity.Project, int64, bool, error) {
	result, err := r.runner.Run(ctx, livequery.Query{
		Collection: entity.ProjectCollection(kind),
		Filters:    filters,
		OrderBy:    "createdAt",
		Desc:       true,
	})
	if err != nil {
		return nil, 0, false, err
	}

	projects := make([]*entity.Project, 0, len(result.Docs))
	for _, doc := range result.Docs {
		projects = append(projects, docToProject(kind, doc))
	}

	total := int64(len(projects))
	projects = page(projects, limit, offset)
	return projects, total, result.Degraded, nil
}

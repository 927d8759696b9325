package usecase

import (
	"context"
	"time"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
)

type ProjectUseCase struct {
	projectRepo  repository.ProjectRepository
	providerRepo repository.ProviderRepository
	propertyRepo repository.PropertyRepository
	newResolver  ResolverFactory
	notifier     *NotificationUseCase
}

func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	providerRepo repository.ProviderRepository,
	propertyRepo repository.PropertyRepository,
	newResolver ResolverFactory,
	notifier *NotificationUseCase,
) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo:  projectRepo,
		providerRepo: providerRepo,
		propertyRepo: propertyRepo,
		newResolver:  newResolver,
		notifier:     notifier,
	}
}

type CreateProjectInput struct {
	Kind        string    `json:"kind" validate:"required,oneof=construction renovation"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	PropertyID  string    `json:"property_id"`
	Budget      float64   `json:"budget" validate:"gte=0"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// Create validates the full request before touching the store: a bad date
// range must fail with a field error and zero writes, not a half-created
// document.
func (uc *ProjectUseCase) Create(ctx context.Context, actor rules.Actor, input CreateProjectInput) (*entity.Project, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, errors.New("VALIDATION_ERROR", "end_date must not be before start_date", 400, nil)
	}

	if input.PropertyID != "" {
		property, err := uc.propertyRepo.GetByID(ctx, input.PropertyID)
		if err != nil {
			return nil, errors.BadRequest("Referenced property does not exist", err)
		}
		if !rules.CanWriteProperty(actor, property.OwnerID) {
			return nil, errors.Forbidden("You can only request work on your own property", nil)
		}
	}

	project := &entity.Project{
		Kind:        input.Kind,
		RequesterID: actor.UID,
		PropertyID:  input.PropertyID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      entity.StatusPending,
		Version:     1,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ProjectDetail carries the project plus resolved display labels and the
// transitions the caller may render as actions.
type ProjectDetail struct {
	*entity.Project
	RequesterLabel     string   `json:"requester_label"`
	ProviderLabel      string   `json:"provider_label,omitempty"`
	PropertyLabel      string   `json:"property_label,omitempty"`
	AllowedTransitions []string `json:"allowed_transitions"`
}

func (uc *ProjectUseCase) GetDetail(ctx context.Context, actor rules.Actor, kind, id string) (*ProjectDetail, error) {
	project, err := uc.projectRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	resolver := uc.newResolver()
	detail := &ProjectDetail{
		Project:            project,
		RequesterLabel:     resolver.Resolve(ctx, "user", project.RequesterID),
		AllowedTransitions: entity.AllowedTransitions(project.Status),
	}
	if project.ProviderID != "" {
		detail.ProviderLabel = resolver.Resolve(ctx, providerResolverKind(kind), project.ProviderID)
	}
	if project.PropertyID != "" {
		detail.PropertyLabel = resolver.Resolve(ctx, "property", project.PropertyID)
	}
	return detail, nil
}

func providerResolverKind(projectKind string) string {
	if projectKind == entity.ProjectKindRenovation {
		return "serviceProvider"
	}
	return "constructionProvider"
}

func providerKind(projectKind string) string {
	if projectKind == entity.ProjectKindRenovation {
		return entity.ProviderKindService
	}
	return entity.ProviderKindConstruction
}

// AssignProvider attaches an approved, active provider to a pending request
// and notifies them.
func (uc *ProjectUseCase) AssignProvider(ctx context.Context, actor rules.Actor, kind, id, providerID string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !rules.CanAssignProvider(actor, project) {
		return nil, errors.Forbidden("Only the requester can choose a provider", nil)
	}
	if project.Status != entity.StatusPending {
		return nil, errors.BadRequest("Provider can only be assigned while the request is pending", nil)
	}

	profile, err := uc.providerRepo.GetByID(ctx, providerKind(kind), providerID)
	if err != nil {
		return nil, err
	}
	if !profile.Available() {
		return nil, errors.BadRequest("Provider is not available for assignment", nil)
	}

	if err := uc.projectRepo.AssignProvider(ctx, kind, id, providerID, profile.OwnerID); err != nil {
		return nil, err
	}
	project.ProviderID = providerID
	project.ProviderOwnerID = profile.OwnerID

	if profile.OwnerID != "" {
		uc.notifier.Notify(ctx, profile.OwnerID,
			"New project assignment",
			"You have been selected for \""+project.Title+"\".",
			"project_assignment", "/projects/"+kind+"/"+project.ID)
	}
	return project, nil
}

type UpdateStatusInput struct {
	Status          string `json:"status" validate:"required"`
	Note            string `json:"note"`
	ExpectedVersion int64  `json:"expected_version" validate:"required,gte=1"`
}

// UpdateStatus runs one workflow step. Authorization and the transition table
// are both enforced, the write is transactional with a version check, and the
// requester is notified of the new state.
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, actor rules.Actor, kind, id string, input UpdateStatusInput) (*entity.Project, error) {
	if !entity.IsValidStatus(input.Status) {
		return nil, errors.BadRequest("Unknown status "+input.Status, nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !rules.CanTransitionProject(actor, project, input.Status) {
		return nil, errors.Forbidden("You don't have permission to change this project's status", nil)
	}

	change := repository.StatusChange{
		Next:            input.Status,
		Note:            input.Note,
		By:              actor.UID,
		ExpectedVersion: input.ExpectedVersion,
	}
	if err := uc.projectRepo.UpdateStatus(ctx, kind, id, change); err != nil {
		return nil, err
	}

	if project.RequesterID != actor.UID {
		uc.notifier.Notify(ctx, project.RequesterID,
			"Project status updated",
			"\""+project.Title+"\" is now "+input.Status+".",
			"project_status", "/projects/"+kind+"/"+project.ID)
	}

	return uc.projectRepo.GetByID(ctx, kind, id)
}

func (uc *ProjectUseCase) ListUpdates(ctx context.Context, kind, id string) ([]*entity.ProjectUpdate, error) {
	return uc.projectRepo.ListUpdates(ctx, kind, id)
}

func (uc *ProjectUseCase) ListMine(ctx context.Context, actor rules.Actor, kind string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return uc.projectRepo.ListByRequester(ctx, kind, actor.UID, limit, offset)
}

// ListAssigned lists the projects where the caller's provider profile is the
// assigned provider.
func (uc *ProjectUseCase) ListAssigned(ctx context.Context, actor rules.Actor, kind string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	profile, err := uc.providerRepo.GetByOwner(ctx, providerKind(kind), actor.UID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return []*entity.Project{}, 0, false, nil
		}
		return nil, 0, false, err
	}
	return uc.projectRepo.ListByProvider(ctx, kind, profile.ID, limit, offset)
}

func (uc *ProjectUseCase) ListByStatus(ctx context.Context, actor rules.Actor, kind, status string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	if !actor.IsAdmin() {
		return nil, 0, false, errors.Forbidden("Admin access required", nil)
	}
	if !entity.IsValidStatus(status) {
		return nil, 0, false, errors.BadRequest("Unknown status "+status, nil)
	}
	return uc.projectRepo.ListByStatus(ctx, kind, status, limit, offset)
}

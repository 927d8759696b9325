package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
)

type fakeProjectRepo struct {
	projects map[string]*entity.Project
	creates  int
	changes  []repository.StatusChange
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*entity.Project{}}
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	f.creates++
	if p.ID == "" {
		p.ID = "proj-1"
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, kind, id string) (*entity.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}
	return p, nil
}

func (f *fakeProjectRepo) AssignProvider(ctx context.Context, kind, id, providerID, providerOwnerID string) error {
	f.projects[id].ProviderID = providerID
	f.projects[id].ProviderOwnerID = providerOwnerID
	return nil
}

func (f *fakeProjectRepo) UpdateStatus(ctx context.Context, kind, id string, change repository.StatusChange) error {
	p := f.projects[id]
	if change.ExpectedVersion != p.Version {
		return errors.Conflict("Project was modified concurrently, reload and retry")
	}
	if !entity.CanTransition(p.Status, change.Next) {
		return errors.Conflict("Status transition from " + p.Status + " to " + change.Next + " is not allowed")
	}
	f.changes = append(f.changes, change)
	p.Status = change.Next
	p.Version++
	return nil
}

func (f *fakeProjectRepo) ListUpdates(ctx context.Context, kind, id string) ([]*entity.ProjectUpdate, error) {
	return nil, nil
}

func (f *fakeProjectRepo) ListByRequester(ctx context.Context, kind, requesterID string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return nil, 0, false, nil
}

func (f *fakeProjectRepo) ListByProvider(ctx context.Context, kind, providerID string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return nil, 0, false, nil
}

func (f *fakeProjectRepo) ListByStatus(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Project, int64, bool, error) {
	return nil, 0, false, nil
}

type fakeProviderRepo struct {
	profiles map[string]*entity.ProviderProfile
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *entity.ProviderProfile) error { return nil }

func (f *fakeProviderRepo) GetByID(ctx context.Context, kind, id string) (*entity.ProviderProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, errors.NotFound("Provider", nil)
	}
	return p, nil
}

func (f *fakeProviderRepo) GetByOwner(ctx context.Context, kind, ownerID string) (*entity.ProviderProfile, error) {
	for _, p := range f.profiles {
		if p.OwnerID == ownerID {
			return p, nil
		}
	}
	return nil, errors.NotFound("Provider", nil)
}

func (f *fakeProviderRepo) Update(ctx context.Context, p *entity.ProviderProfile) error { return nil }
func (f *fakeProviderRepo) Delete(ctx context.Context, kind, id string) error           { return nil }
func (f *fakeProviderRepo) SetApproval(ctx context.Context, kind, id string, approved bool) error {
	return nil
}

func (f *fakeProviderRepo) ListApproved(ctx context.Context, kind, skill string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	return nil, 0, false, nil
}

func (f *fakeProviderRepo) ListPending(ctx context.Context, kind string, limit, offset int) ([]*entity.ProviderProfile, int64, bool, error) {
	return nil, 0, false, nil
}

type fakePropertyRepo struct {
	properties map[string]*entity.Property
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *entity.Property) error { return nil }

func (f *fakePropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, errors.NotFound("Property", nil)
	}
	return p, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *entity.Property) error  { return nil }
func (f *fakePropertyRepo) SoftDelete(ctx context.Context, id string) error       { return nil }
func (f *fakePropertyRepo) IncrementViews(ctx context.Context, id string) error   { return nil }
func (f *fakePropertyRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Property, int64, bool, error) {
	return nil, 0, false, nil
}
func (f *fakePropertyRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, int64, error) {
	return nil, 0, nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	return nil, errors.NotFound("Notification", nil)
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, bool, error) {
	return nil, 0, false, nil
}

func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error     { return nil }
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error { return nil }

func newProjectUseCaseForTest(projects *fakeProjectRepo, providers *fakeProviderRepo) (*ProjectUseCase, *fakeNotificationRepo) {
	notifications := &fakeNotificationRepo{}
	uc := NewProjectUseCase(
		projects,
		providers,
		&fakePropertyRepo{properties: map[string]*entity.Property{}},
		NewDisplayResolver,
		NewNotificationUseCase(notifications, nil, nil, nil),
	)
	return uc, notifications
}

func TestCreateProjectRejectsBadDateRangeBeforeAnyWrite(t *testing.T) {
	repo := newFakeProjectRepo()
	uc, _ := newProjectUseCaseForTest(repo, &fakeProviderRepo{})

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.Create(context.Background(), rules.Actor{UID: "budi"}, CreateProjectInput{
		Kind:      entity.ProjectKindConstruction,
		Title:     "Bangun rumah",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Equal(t, 0, repo.creates, "invalid request must not write anything")
}

func TestCreateProjectEqualDatesAllowed(t *testing.T) {
	repo := newFakeProjectRepo()
	uc, _ := newProjectUseCaseForTest(repo, &fakeProviderRepo{})

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	project, err := uc.Create(context.Background(), rules.Actor{UID: "budi"}, CreateProjectInput{
		Kind:      entity.ProjectKindRenovation,
		Title:     "Cat ulang",
		StartDate: day,
		EndDate:   day,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, project.Status)
	assert.Equal(t, int64(1), project.Version)
}

func TestAssignProviderRequiresAvailability(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["proj-1"] = &entity.Project{
		ID:          "proj-1",
		Kind:        entity.ProjectKindConstruction,
		RequesterID: "budi",
		Status:      entity.StatusPending,
		Version:     1,
	}
	providers := &fakeProviderRepo{profiles: map[string]*entity.ProviderProfile{
		"prov-1": {ID: "prov-1", OwnerID: "siti", Approved: false, Active: true},
	}}
	uc, _ := newProjectUseCaseForTest(repo, providers)

	_, err := uc.AssignProvider(context.Background(), rules.Actor{UID: "budi"}, entity.ProjectKindConstruction, "proj-1", "prov-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, repo.projects["proj-1"].ProviderID)
}

func TestUpdateStatusEnforcesRulesAndVersion(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["proj-1"] = &entity.Project{
		ID:          "proj-1",
		Kind:        entity.ProjectKindConstruction,
		RequesterID: "budi",
		Title:       "Bangun pagar",
		Status:      entity.StatusPending,
		Version:     1,
	}
	providers := &fakeProviderRepo{profiles: map[string]*entity.ProviderProfile{
		"prov-1": {ID: "prov-1", OwnerID: "siti", Approved: true, Active: true},
	}}
	uc, notifications := newProjectUseCaseForTest(repo, providers)
	ctx := context.Background()

	// Assignment stores the profile id; the provider signs in with their own
	// uid, which is what status authorization must match against.
	_, err := uc.AssignProvider(ctx, rules.Actor{UID: "budi"}, entity.ProjectKindConstruction, "proj-1", "prov-1")
	require.NoError(t, err)
	assert.Equal(t, "prov-1", repo.projects["proj-1"].ProviderID)
	assert.Equal(t, "siti", repo.projects["proj-1"].ProviderOwnerID)

	// A stranger cannot touch the workflow.
	_, err = uc.UpdateStatus(ctx, rules.Actor{UID: "joko"}, entity.ProjectKindConstruction, "proj-1", UpdateStatusInput{
		Status:          entity.StatusInProgress,
		ExpectedVersion: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// The assigned provider advances the work under their auth uid.
	project, err := uc.UpdateStatus(ctx, rules.Actor{UID: "siti"}, entity.ProjectKindConstruction, "proj-1", UpdateStatusInput{
		Status:          entity.StatusInProgress,
		ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, project.Status)
	assert.Equal(t, int64(2), project.Version)
	require.Len(t, notifications.created, 2)
	assert.Equal(t, "siti", notifications.created[0].UserID, "assignment notifies the provider")
	assert.Equal(t, "budi", notifications.created[1].UserID, "status change notifies the requester")

	// A stale version is rejected even for an otherwise legal transition.
	_, err = uc.UpdateStatus(ctx, rules.Actor{UID: "siti"}, entity.ProjectKindConstruction, "proj-1", UpdateStatusInput{
		Status:          entity.StatusCompleted,
		ExpectedVersion: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestUpdateStatusRequesterCanOnlyCancelPending(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["proj-1"] = &entity.Project{
		ID:          "proj-1",
		Kind:        entity.ProjectKindRenovation,
		RequesterID: "budi",
		Status:      entity.StatusPending,
		Version:     1,
	}
	uc, _ := newProjectUseCaseForTest(repo, &fakeProviderRepo{})
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, rules.Actor{UID: "budi"}, entity.ProjectKindRenovation, "proj-1", UpdateStatusInput{
		Status:          entity.StatusInProgress,
		ExpectedVersion: 1,
	})
	require.Error(t, err, "requester must not start the work themselves")

	project, err := uc.UpdateStatus(ctx, rules.Actor{UID: "budi"}, entity.ProjectKindRenovation, "proj-1", UpdateStatusInput{
		Status:          entity.StatusCancelled,
		ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, project.Status)
}

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"griyapasar/internal/domain/entity"
)

var (
	admin     = Actor{UID: "a1", Role: entity.RoleAdmin}
	requester = Actor{UID: "u1", Role: entity.RoleUser}
	provider  = Actor{UID: "p1", Role: entity.RoleConstructor}
	stranger  = Actor{UID: "x1", Role: entity.RoleUser}
)

func TestIsCollectionAllowed(t *testing.T) {
	assert.True(t, IsCollectionAllowed("notifications"))
	assert.True(t, IsCollectionAllowed("constructionProjects"))
	assert.False(t, IsCollectionAllowed("wallets"))
	assert.False(t, IsCollectionAllowed(""))
}

func TestNotificationReadableByTargetOnly(t *testing.T) {
	assert.True(t, CanReadNotification(requester, "u1"))
	assert.True(t, CanReadNotification(admin, "u1"))
	assert.False(t, CanReadNotification(stranger, "u1"))
}

func TestChatReadableByParticipantsOnly(t *testing.T) {
	participants := []string{"u1", "p1"}
	assert.True(t, CanReadChat(requester, participants))
	assert.True(t, CanReadChat(provider, participants))
	assert.False(t, CanReadChat(stranger, participants))
	assert.False(t, CanReadChat(admin, participants), "chats stay private even from admins")
}

func TestProjectTransitionAuthority(t *testing.T) {
	p := &entity.Project{
		RequesterID:     "u1",
		ProviderID:      "prof-7",
		ProviderOwnerID: "p1",
		Status:          entity.StatusPending,
	}

	assert.True(t, CanTransitionProject(provider, p, entity.StatusInProgress))
	assert.True(t, CanTransitionProject(admin, p, entity.StatusInProgress))
	assert.False(t, CanTransitionProject(stranger, p, entity.StatusInProgress))

	// The profile document id is not an identity; only the owner uid counts.
	profileIDActor := Actor{UID: "prof-7", Role: entity.RoleConstructor}
	assert.False(t, CanTransitionProject(profileIDActor, p, entity.StatusInProgress))

	// A requester may only cancel, and only while pending.
	assert.True(t, CanTransitionProject(requester, p, entity.StatusCancelled))
	assert.False(t, CanTransitionProject(requester, p, entity.StatusInProgress))

	p.Status = entity.StatusInProgress
	assert.False(t, CanTransitionProject(requester, p, entity.StatusCancelled))
}

func TestUnassignedProjectHasNoProviderAuthority(t *testing.T) {
	p := &entity.Project{RequesterID: "u1", Status: entity.StatusPending}
	actor := Actor{UID: "", Role: entity.RoleConstructor}
	assert.False(t, CanTransitionProject(actor, p, entity.StatusInProgress))
}

// Package rules mirrors the deployed Firestore security rules in one place.
// Handlers and repositories consult it instead of hand-duplicating allow-lists
// per page; if the deployed rules change, this is the only file to touch.
package rules

import (
	"griyapasar/internal/domain/entity"
)

// Actor is the minimal identity the rules need. The session middleware
// satisfies it.
type Actor struct {
	UID  string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

var allowedCollections = map[string]bool{
	"users":                 true,
	"serviceProviders":      true,
	"constructionProviders": true,
	"properties":            true,
	"constructionProjects":  true,
	"renovationProjects":    true,
	"notifications":         true,
	"chats":                 true,
	"fileMetadata":          true,
}

// IsCollectionAllowed gates which collections the API may query at all.
func IsCollectionAllowed(name string) bool {
	return allowedCollections[name]
}

// CanReadNotification: a notification is readable only by its target user.
func CanReadNotification(actor Actor, targetUserID string) bool {
	return actor.IsAdmin() || actor.UID == targetUserID
}

// CanReadChat: participants only. Admins are deliberately excluded; chats are
// private between the two parties per the deployed rules.
func CanReadChat(actor Actor, participants []string) bool {
	for _, p := range participants {
		if p == actor.UID {
			return true
		}
	}
	return false
}

// CanWriteUser: a profile is writable by its owner or an admin.
func CanWriteUser(actor Actor, userID string) bool {
	return actor.IsAdmin() || actor.UID == userID
}

// CanWriteProvider: the owning user mutates their profile; approval flags are
// admin-only and checked separately via CanApproveProvider.
func CanWriteProvider(actor Actor, ownerID string) bool {
	return actor.IsAdmin() || actor.UID == ownerID
}

func CanApproveProvider(actor Actor) bool {
	return actor.IsAdmin()
}

// CanWriteProperty: owner or admin.
func CanWriteProperty(actor Actor, ownerID string) bool {
	return actor.IsAdmin() || actor.UID == ownerID
}

// CanTransitionProject: status is mutated only by the assigned provider or an
// admin, except that the requester may cancel their own pending request.
// The provider is matched on the owner uid behind the assigned profile, not
// the profile document id.
func CanTransitionProject(actor Actor, p *entity.Project, next string) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.UID == p.ProviderOwnerID && p.ProviderOwnerID != "" {
		return true
	}
	if actor.UID == p.RequesterID && next == entity.StatusCancelled && p.Status == entity.StatusPending {
		return true
	}
	return false
}

// CanAssignProvider: requester picks the provider for their own request;
// admins may reassign.
func CanAssignProvider(actor Actor, p *entity.Project) bool {
	return actor.IsAdmin() || actor.UID == p.RequesterID
}

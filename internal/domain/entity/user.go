package entity

import (
	"time"
)

const (
	RoleUser        = "user"
	RoleRenovator   = "renovator"
	RoleConstructor = "constructor"
	RoleAdmin       = "admin"
)

type NotifyPrefs struct {
	Email bool `json:"email" firestore:"email"`
	Push  bool `json:"push" firestore:"push"`
}

type User struct {
	ID          string   `json:"id" firestore:"id"`
	Email       string   `json:"email" firestore:"email"`
	DisplayName string   `json:"display_name" firestore:"displayName"`
	Phone       string   `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role        string   `json:"role" firestore:"role"`
	Status      string   `json:"status" firestore:"status"`
	PhotoURL    string   `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Favorites   []string `json:"favorites" firestore:"favorites"`

	EmailVerified bool        `json:"email_verified" firestore:"emailVerified"`
	NotifyPrefs   NotifyPrefs `json:"notify_prefs" firestore:"notifyPrefs"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsProvider reports whether the role entitles the user to take on requests.
func (u *User) IsProvider() bool {
	return u.Role == RoleRenovator || u.Role == RoleConstructor
}

func (u *User) HasFavorite(propertyID string) bool {
	for _, id := range u.Favorites {
		if id == propertyID {
			return true
		}
	}
	return false
}

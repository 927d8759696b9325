package entity

import (
	"time"
)

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

type Notification struct {
	ID      string `json:"id" firestore:"id"`
	UserID  string `json:"user_id" firestore:"userId"`
	Title   string `json:"title" firestore:"title"`
	Message string `json:"message" firestore:"message"`
	Type    string `json:"type" firestore:"type"`
	Link    string `json:"link,omitempty" firestore:"link,omitempty"`
	Read    bool   `json:"read" firestore:"read"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

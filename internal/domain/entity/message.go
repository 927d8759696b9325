package entity

import "time"

type Message struct {
	ID             string   `json:"id" firestore:"id"`
	ChatID         string   `json:"chat_id" firestore:"chatId"`
	SenderID       string   `json:"sender_id" firestore:"senderId"`
	Content        string   `json:"content" firestore:"content"`
	Type           string   `json:"type" firestore:"type"` // "text", "image", "system"
	AttachmentURLs []string `json:"attachment_urls,omitempty" firestore:"attachmentUrls,omitempty"`
	ReadBy         []string `json:"read_by" firestore:"readBy"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

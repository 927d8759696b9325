package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/livequery"
	"griyapasar/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
	runner *livequery.Runner
}

func NewFirestoreNotificationRepository(client *firestore.Client, store *livequery.Store) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
		runner: store.Runner(),
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.Type == "" {
		notification.Type = entity.NotificationInfo
	}
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if livequery.IsPermissionDenied(err) {
			return nil, errors.PermissionDenied("notification", err)
		}
		return nil, errors.NotFound("Notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}
	return &notification, nil
}

// ListByUser is the textbook missing-index query: equality on userId plus
// ordering by createdAt. It goes through the cascade so the inbox stays
// usable before the composite index exists.
func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, bool, error) {
	result, err := r.runner.Run(ctx, livequery.Query{
		Collection: "notifications",
		Filters:    []livequery.Filter{{Field: "userId", Value: userID}},
		OrderBy:    "createdAt",
		Desc:       true,
	})
	if err != nil {
		return nil, 0, false, err
	}

	notifications := make([]*entity.Notification, 0, len(result.Docs))
	for _, doc := range result.Docs {
		notifications = append(notifications, docToNotification(doc))
	}

	total := int64(len(notifications))
	notifications = page(notifications, limit, offset)
	return notifications, total, result.Degraded, nil
}

func (r *firestoreNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		if livequery.IsPermissionDenied(err) {
			return 0, nil
		}
		return 0, errors.Internal("Failed to count unread notifications", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	iter := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate unread notifications", err)
		}
		batch.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}})
		count++
	}

	if count == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}
	return nil
}

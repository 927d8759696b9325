package usecase

import (
	"context"
	"encoding/json"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/livequery"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	manager          *livequery.Manager
	pusher           Pusher
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	manager *livequery.Manager,
	pusher Pusher,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		manager:          manager,
		pusher:           pusher,
	}
}

// Notify writes a notification on behalf of another user. The document is
// always persisted; push preferences only gate the transient websocket alert.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, title, message, notifType, link string) error {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Link:    link,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		// Notification failures never break the triggering action.
		logger.Warn("Failed to create notification for %s: %v", userID, err)
		return err
	}
	return nil
}

func (uc *NotificationUseCase) ListByUser(ctx context.Context, actor rules.Actor, userID string, limit, offset int) ([]*entity.Notification, int64, bool, error) {
	if !rules.CanReadNotification(actor, userID) {
		// Expected when a stale tab queries after a role change: quiet
		// warning, empty inbox, no error.
		logger.Warn("Notification list denied: actor=%s target=%s", actor.UID, userID)
		return []*entity.Notification{}, 0, false, nil
	}
	return uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.UnreadCount(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, actor rules.Actor, id string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rules.CanReadNotification(actor, notification.UserID) {
		return errors.Forbidden("Cannot modify another user's notification", nil)
	}
	return uc.notificationRepo.MarkRead(ctx, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

type feedEvent struct {
	Event         string                 `json:"event"` // "snapshot" or "alert"
	Notifications []*entity.Notification `json:"notifications,omitempty"`
	Alert         *entity.Notification   `json:"alert,omitempty"`
	Degraded      bool                   `json:"degraded,omitempty"`
}

// StreamToUser runs a live inbox feed for one connection. Every store change
// pushes the full current set; the differ additionally surfaces a one-shot
// alert when a new unread notification arrives, and stays silent across
// full-set replays. Returns when ctx (the connection) ends; the subscription
// is released through the manager, never leaked.
func (uc *NotificationUseCase) StreamToUser(ctx context.Context, userID string) {
	query := livequery.Query{
		Collection: "notifications",
		Filters:    []livequery.Filter{{Field: "userId", Value: userID}},
		OrderBy:    "createdAt",
		Desc:       true,
		Limit:      50,
	}

	sub := uc.manager.Subscribe(ctx, query)
	defer sub.Unsubscribe()

	// The alert memory lives and dies with this connection. A shared differ
	// would let a stale connection's teardown wipe state a reconnect just
	// remembered, re-alerting the same notification.
	differ := livequery.NewDiffer()
	streamKey := "notifications:" + userID

	for {
		select {
		case <-ctx.Done():
			return
		case result := <-sub.C:
			uc.deliver(differ, userID, streamKey, result)
		}
	}
}

func (uc *NotificationUseCase) deliver(differ *livequery.Differ, userID, streamKey string, result livequery.Result) {
	notifications := make([]*entity.Notification, 0, len(result.Docs))
	for _, doc := range result.Docs {
		notifications = append(notifications, docToNotification(doc))
	}

	uc.push(userID, feedEvent{
		Event:         "snapshot",
		Notifications: notifications,
		Degraded:      result.Degraded,
	})

	newest, emit := differ.Observe(streamKey, result.Docs)
	if !emit {
		return
	}
	if user, err := uc.userRepo.GetByID(context.Background(), userID); err == nil && !user.NotifyPrefs.Push {
		return
	}
	uc.push(userID, feedEvent{Event: "alert", Alert: docToNotification(newest)})
}

func (uc *NotificationUseCase) push(userID string, event feedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal feed event: %v", err)
		return
	}
	uc.pusher.SendToUser(userID, payload)
}

func docToNotification(doc livequery.Document) *entity.Notification {
	n := &entity.Notification{ID: doc.ID}
	if v, ok := doc.Data["userId"].(string); ok {
		n.UserID = v
	}
	if v, ok := doc.Data["title"].(string); ok {
		n.Title = v
	}
	if v, ok := doc.Data["message"].(string); ok {
		n.Message = v
	}
	if v, ok := doc.Data["type"].(string); ok {
		n.Type = v
	}
	if v, ok := doc.Data["link"].(string); ok {
		n.Link = v
	}
	if v, ok := doc.Data["read"].(bool); ok {
		n.Read = v
	}
	return n
}

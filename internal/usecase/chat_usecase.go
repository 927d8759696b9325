package usecase

import (
	"context"
	"encoding/json"
	"time"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	newResolver ResolverFactory
	notifier    *NotificationUseCase
	pusher      Pusher
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	newResolver ResolverFactory,
	notifier *NotificationUseCase,
	pusher Pusher,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		newResolver: newResolver,
		notifier:    notifier,
		pusher:      pusher,
	}
}

// GetOrCreate returns the existing chat between the actor and peer, creating
// it on first contact. A chat is always a two-party conversation.
func (uc *ChatUseCase) GetOrCreate(ctx context.Context, actor rules.Actor, peerID, propertyID, projectID string) (*entity.Chat, error) {
	if peerID == "" || peerID == actor.UID {
		return nil, errors.BadRequest("Invalid chat participant", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, errors.BadRequest("Chat participant does not exist", err)
	}

	chat, err := uc.chatRepo.GetByParticipants(ctx, actor.UID, peerID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat = &entity.Chat{
		Participants: []string{actor.UID, peerID},
		PropertyID:   propertyID,
		ProjectID:    projectID,
		UnreadCount:  map[string]int{actor.UID: 0, peerID: 0},
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (uc *ChatUseCase) GetByID(ctx context.Context, actor rules.Actor, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !rules.CanReadChat(actor, chat.Participants) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

// ChatSummary is a conversation list entry: the chat plus the peer's display
// label, resolved through the shared cache.
type ChatSummary struct {
	*entity.Chat
	PeerLabel string `json:"peer_label"`
	Unread    int    `json:"unread"`
}

func (uc *ChatUseCase) ListMine(ctx context.Context, actor rules.Actor, limit, offset int) ([]*ChatSummary, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, actor.UID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	resolver := uc.newResolver()
	summaries := make([]*ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, &ChatSummary{
			Chat:      chat,
			PeerLabel: resolver.Resolve(ctx, "user", chat.OtherParticipant(actor.UID)),
			Unread:    chat.UnreadCount[actor.UID],
		})
	}
	return summaries, total, nil
}

type SendMessageInput struct {
	Content        string   `json:"content" validate:"required"`
	Type           string   `json:"type"`
	AttachmentURLs []string `json:"attachment_urls"`
}

type chatEvent struct {
	Event   string          `json:"event"` // "message"
	ChatID  string          `json:"chat_id"`
	Message *entity.Message `json:"message"`
}

// SendMessage persists the message, bumps the chat's last-message fields and
// the recipient's unread counter, then pushes the message to the recipient's
// live connection and drops a notification for when they are offline.
func (uc *ChatUseCase) SendMessage(ctx context.Context, actor rules.Actor, chatID string, input SendMessageInput) (*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !rules.CanReadChat(actor, chat.Participants) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "text"
	}
	message := &entity.Message{
		ChatID:         chatID,
		SenderID:       actor.UID,
		Content:        input.Content,
		Type:           msgType,
		AttachmentURLs: input.AttachmentURLs,
		ReadBy:         []string{actor.UID},
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	peerID := chat.OtherParticipant(actor.UID)
	chat.LastMessage = input.Content
	chat.LastMessageAt = time.Now()
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[peerID]++
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Warn("Failed to update chat %s after message: %v", chatID, err)
	}

	if payload, err := json.Marshal(chatEvent{Event: "message", ChatID: chatID, Message: message}); err == nil {
		uc.pusher.SendToUser(peerID, payload)
	}
	uc.notifier.Notify(ctx, peerID,
		"New message",
		uc.newResolver().Resolve(ctx, "user", actor.UID)+" sent you a message.",
		"chat_message", "/chats/"+chatID)

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, actor rules.Actor, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !rules.CanReadChat(actor, chat.Participants) {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
}

func (uc *ChatUseCase) MarkRead(ctx context.Context, actor rules.Actor, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !rules.CanReadChat(actor, chat.Participants) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	return uc.chatRepo.MarkMessagesRead(ctx, chatID, actor.UID)
}

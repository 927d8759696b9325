package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)

	notifications, total, degraded, err := h.notificationUseCase.ListByUser(
		c.Request().Context(), actor, actor.UID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, params.Page, params.PageSize, degraded)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor := middleware.ActorFrom(c)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), actor, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createChatRequest struct {
	PeerID     string `json:"peer_id" validate:"required"`
	PropertyID string `json:"property_id"`
	ProjectID  string `json:"project_id"`
}

func (h *ChatHandler) GetOrCreate(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	chat, err := h.chatUseCase.GetOrCreate(c.Request().Context(), actor, req.PeerID, req.PropertyID, req.ProjectID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	chat, err := h.chatUseCase.GetByID(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListMine(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)

	chats, total, err := h.chatUseCase.ListMine(c.Request().Context(), actor, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, params.Page, params.PageSize, false)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	message, err := h.chatUseCase.SendMessage(c.Request().Context(), actor, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), actor, c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, params.Page, params.PageSize, false)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if err := h.chatUseCase.MarkRead(c.Request().Context(), actor, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

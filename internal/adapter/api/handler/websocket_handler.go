package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"griyapasar/internal/infrastructure/firebase"
	ws "griyapasar/internal/infrastructure/websocket"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/errors"
)

type WebSocketHandler struct {
	wsManager           *ws.Manager
	tokenVerifier       *firebase.TokenVerifier
	notificationUseCase *usecase.NotificationUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, tokenVerifier *firebase.TokenVerifier, notificationUseCase *usecase.NotificationUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:           wsManager,
		tokenVerifier:       tokenVerifier,
		notificationUseCase: notificationUseCase,
	}
}

// HandleWebSocket upgrades the connection and starts the user's live
// notification feed. The token rides the query string because browsers
// cannot set headers on websocket upgrades.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication token required", nil)
	}

	userID, err := h.tokenVerifier.Verify(token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	client := ws.NewClient(userID, conn, cancel)

	h.wsManager.Register <- client

	go h.notificationUseCase.StreamToUser(streamCtx, userID)
	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

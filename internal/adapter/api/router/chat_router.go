package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)
	chats.POST("", chatHandler.GetOrCreate)
	chats.GET("", chatHandler.ListMine)
	chats.GET("/:id", chatHandler.GetChat)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage, middleware.RateLimit(limiter, "send_message"))
	chats.PUT("/:id/read", chatHandler.MarkRead)
}

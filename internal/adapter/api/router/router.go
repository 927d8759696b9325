package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	SetupAuthRouter(e, limiter)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupProviderRouter(e, authMiddleware, adminMiddleware)
	SetupPropertyRouter(e, authMiddleware, limiter)
	SetupProjectRouter(e, authMiddleware, adminMiddleware, limiter)
	SetupNotificationRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware, limiter)
	SetupHealthRouter(e)
}

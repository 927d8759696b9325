package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.Use(middleware.RateLimit(limiter, "auth"))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
}

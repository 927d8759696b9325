package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func SetupPropertyRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	propertyHandler := handler.GetPropertyHandler()

	// Public browse and detail
	e.GET("/v1/properties", propertyHandler.List)
	e.GET("/v1/properties/:id", propertyHandler.GetDetail)

	mine := e.Group("/v1/my-properties")
	mine.Use(authMiddleware.Authenticate)
	mine.GET("", propertyHandler.ListMine)
	mine.POST("", propertyHandler.Create, middleware.RateLimit(limiter, "create_listing"))
	mine.PUT("/:id", propertyHandler.Update)
	mine.DELETE("/:id", propertyHandler.Delete)
}

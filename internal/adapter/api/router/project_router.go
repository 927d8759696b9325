package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func SetupProjectRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	projectHandler := handler.GetProjectHandler()

	projects := e.Group("/v1/projects")
	projects.Use(authMiddleware.Authenticate)
	projects.POST("", projectHandler.Create, middleware.RateLimit(limiter, "create_project"))
	projects.GET("/:kind/mine", projectHandler.ListMine)
	projects.GET("/:kind/assigned", projectHandler.ListAssigned)
	projects.GET("/:kind/:id", projectHandler.GetDetail)
	projects.PUT("/:kind/:id/provider", projectHandler.AssignProvider)
	projects.PUT("/:kind/:id/status", projectHandler.UpdateStatus)
	projects.GET("/:kind/:id/updates", projectHandler.ListUpdates)

	admin := e.Group("/v1/admin/projects")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/:kind", projectHandler.ListByStatus)
}

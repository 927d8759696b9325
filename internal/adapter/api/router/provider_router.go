package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
)

func SetupProviderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	providerHandler := handler.GetProviderHandler()

	// Public catalog
	e.GET("/v1/providers/:kind", providerHandler.ListApproved)
	e.GET("/v1/providers/:kind/:id", providerHandler.GetProvider)

	mine := e.Group("/v1/my-provider")
	mine.Use(authMiddleware.Authenticate)
	mine.POST("", providerHandler.Register)
	mine.GET("/:kind", providerHandler.GetMyProfile)
	mine.PUT("/:kind/:id", providerHandler.Update)
	mine.DELETE("/:kind/:id", providerHandler.Delete)

	admin := e.Group("/v1/admin/providers")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("/:kind/pending", providerHandler.ListPending)
	admin.PUT("/:kind/:id/approval", providerHandler.SetApproval)
}

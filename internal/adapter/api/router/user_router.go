package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.PUT("/me/password", userHandler.UpdatePassword)
	users.GET("/me/verification", userHandler.GetVerificationStatus)
	users.PUT("/me/notify-prefs", userHandler.UpdateNotifyPrefs)
	users.GET("/me/favorites", userHandler.ListFavorites)
	users.POST("/me/favorites/:id", userHandler.AddFavorite)
	users.DELETE("/me/favorites/:id", userHandler.RemoveFavorite)

	admin := e.Group("/v1/admin/users")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", userHandler.ListUsers)
	admin.PUT("/:id/role", userHandler.SetRole)
}

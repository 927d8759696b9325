package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/infrastructure/ratelimit"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.POST("", fileHandler.UploadFile, middleware.RateLimit(limiter, "upload"))
	files.POST("/signed-url", fileHandler.GenerateSignedURL, middleware.RateLimit(limiter, "upload"))
	files.GET("", fileHandler.ListByEntity)
	files.DELETE("/:id", fileHandler.DeleteFile)
}

package router

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/handler"
)

// SetupDevRouter registers the token mint shortcuts. No-op outside
// development so the routes can never leak into a deployed binary's surface.
func SetupDevRouter(e *echo.Echo, environment string) {
	if environment != "development" {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()

	e.GET("/_dev/token/user", devTokenHandler.GenerateUserToken)
	e.GET("/_dev/token/admin", devTokenHandler.GenerateAdminToken)
	e.POST("/_dev/long-lived-token", devTokenHandler.GenerateTokenForUID)
}

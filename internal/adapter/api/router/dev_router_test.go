package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"griyapasar/internal/adapter/api/handler"
)

func TestDevRoutesRegisteredOnlyInDevelopment(t *testing.T) {
	handler.SetupDevTokenHandler(nil, nil)

	e := echo.New()
	SetupDevRouter(e, "production")
	assert.Empty(t, e.Routes(), "token mint shortcuts must not exist outside development")

	e = echo.New()
	SetupDevRouter(e, "development")
	assert.Len(t, e.Routes(), 3)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/infrastructure/firebase"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/response"
)

// DevTokenHandler mints long-lived tokens for local testing. Only reachable
// through the /_dev routes, which are registered in development alone.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) mintForRole(c echo.Context, role string) error {
	users, _, err := h.userRepo.List(c.Request().Context(), map[string]interface{}{"role": role}, 1, 0)
	if err != nil {
		return response.Error(c, err)
	}
	if len(users) == 0 {
		return response.Error(c, errors.NotFound("User with role "+role, nil))
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), users[0].ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    users[0].ID,
			"email": users[0].Email,
			"role":  users[0].Role,
		},
	})
}

func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	return h.mintForRole(c, entity.RoleUser)
}

func (h *DevTokenHandler) GenerateAdminToken(c echo.Context) error {
	return h.mintForRole(c, entity.RoleAdmin)
}

func (h *DevTokenHandler) GenerateTokenForUID(c echo.Context) error {
	var req struct {
		UID string `json:"uid" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"token": token})
}

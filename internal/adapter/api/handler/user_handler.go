package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/domain/entity"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetVerificationStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	verified, err := h.userUseCase.VerificationStatus(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"email_verified": verified})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	if err := h.userUseCase.UpdatePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Password updated"})
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), actor, actor.UID, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type notifyPrefsRequest struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

func (h *UserHandler) UpdateNotifyPrefs(c echo.Context) error {
	var req notifyPrefsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	user, err := h.userUseCase.UpdateNotifyPrefs(c.Request().Context(), uid, entity.NotifyPrefs{
		Email: req.Email,
		Push:  req.Push,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) AddFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("id")

	if err := h.userUseCase.AddFavorite(c.Request().Context(), uid, propertyID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "added"})
}

func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("id")

	if err := h.userUseCase.RemoveFavorite(c.Request().Context(), uid, propertyID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *UserHandler) ListFavorites(c echo.Context) error {
	uid := c.Get("uid").(string)

	properties, err := h.userUseCase.ListFavorites(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, properties)
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	if err := h.userUseCase.SetRole(c.Request().Context(), actor, c.Param("id"), req.Role); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "updated"})
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), actor, c.QueryParam("role"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, params.Page, params.PageSize, false)
}

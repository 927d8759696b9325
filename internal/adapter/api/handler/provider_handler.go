package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type ProviderHandler struct {
	providerUseCase *usecase.ProviderUseCase
}

func NewProviderHandler(providerUseCase *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{
		providerUseCase: providerUseCase,
	}
}

func providerKindParam(c echo.Context) (string, error) {
	kind := c.Param("kind")
	if kind != "service" && kind != "construction" {
		return "", errors.BadRequest("Unknown provider kind "+kind, nil)
	}
	return kind, nil
}

func (h *ProviderHandler) Register(c echo.Context) error {
	var req usecase.RegisterProviderInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	profile, err := h.providerUseCase.Register(c.Request().Context(), actor, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, profile)
}

func (h *ProviderHandler) GetProvider(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	profile, err := h.providerUseCase.GetByID(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProviderHandler) GetMyProfile(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	profile, err := h.providerUseCase.GetMine(c.Request().Context(), actor, kind)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProviderHandler) Update(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.UpdateProviderInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	profile, err := h.providerUseCase.Update(c.Request().Context(), actor, kind, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProviderHandler) Delete(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	if err := h.providerUseCase.Delete(c.Request().Context(), actor, kind, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *ProviderHandler) ListApproved(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	profiles, total, degraded, err := h.providerUseCase.ListApproved(
		c.Request().Context(), kind, c.QueryParam("skill"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, profiles, total, params.Page, params.PageSize, degraded)
}

func (h *ProviderHandler) ListPending(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)
	profiles, total, degraded, err := h.providerUseCase.ListPending(
		c.Request().Context(), actor, kind, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, profiles, total, params.Page, params.PageSize, degraded)
}

type setApprovalRequest struct {
	Approved bool `json:"approved"`
}

func (h *ProviderHandler) SetApproval(c echo.Context) error {
	kind, err := providerKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req setApprovalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	profile, err := h.providerUseCase.SetApproval(c.Request().Context(), actor, kind, c.Param("id"), req.Approved)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

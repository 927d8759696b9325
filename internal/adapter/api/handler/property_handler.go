package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type PropertyHandler struct {
	propertyUseCase *usecase.PropertyUseCase
}

func NewPropertyHandler(propertyUseCase *usecase.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
	}
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var req usecase.CreatePropertyInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	property, err := h.propertyUseCase.Create(c.Request().Context(), actor, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, property)
}

func (h *PropertyHandler) GetDetail(c echo.Context) error {
	detail, err := h.propertyUseCase.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *PropertyHandler) Update(c echo.Context) error {
	var req usecase.UpdatePropertyInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	property, err := h.propertyUseCase.Update(c.Request().Context(), actor, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if err := h.propertyUseCase.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *PropertyHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	properties, total, degraded, err := h.propertyUseCase.List(c.Request().Context(), usecase.ListPropertiesParams{
		Type:        c.QueryParam("type"),
		ListingType: c.QueryParam("listing_type"),
		City:        c.QueryParam("city"),
		Sort:        c.QueryParam("sort"),
		Limit:       params.PageSize,
		Offset:      params.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, properties, total, params.Page, params.PageSize, degraded)
}

func (h *PropertyHandler) ListMine(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)

	properties, total, err := h.propertyUseCase.ListMine(c.Request().Context(), actor, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, properties, total, params.Page, params.PageSize, false)
}

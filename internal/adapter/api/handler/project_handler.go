package handler

import (
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/response"
	"griyapasar/pkg/utils"
)

type ProjectHandler struct {
	projectUseCase *usecase.ProjectUseCase
}

func NewProjectHandler(projectUseCase *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
	}
}

func projectKindParam(c echo.Context) (string, error) {
	kind := c.Param("kind")
	if kind != "construction" && kind != "renovation" {
		return "", errors.BadRequest("Unknown project kind "+kind, nil)
	}
	return kind, nil
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req usecase.CreateProjectInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	project, err := h.projectUseCase.Create(c.Request().Context(), actor, req)
	if err != nil {
		if errors.Is(err, "VALIDATION_ERROR") {
			return response.FieldError(c, "end_date", "must not be before start_date")
		}
		return response.Error(c, err)
	}

	return response.Created(c, project)
}

func (h *ProjectHandler) GetDetail(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	detail, err := h.projectUseCase.GetDetail(c.Request().Context(), actor, kind, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

type assignProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
}

func (h *ProjectHandler) AssignProvider(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req assignProviderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	project, err := h.projectUseCase.AssignProvider(c.Request().Context(), actor, kind, c.Param("id"), req.ProviderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.UpdateStatusInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	project, err := h.projectUseCase.UpdateStatus(c.Request().Context(), actor, kind, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

func (h *ProjectHandler) ListUpdates(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	updates, err := h.projectUseCase.ListUpdates(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updates)
}

func (h *ProjectHandler) ListMine(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)
	projects, total, degraded, err := h.projectUseCase.ListMine(c.Request().Context(), actor, kind, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, projects, total, params.Page, params.PageSize, degraded)
}

func (h *ProjectHandler) ListAssigned(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)
	projects, total, degraded, err := h.projectUseCase.ListAssigned(c.Request().Context(), actor, kind, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, projects, total, params.Page, params.PageSize, degraded)
}

func (h *ProjectHandler) ListByStatus(c echo.Context) error {
	kind, err := projectKindParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	actor := middleware.ActorFrom(c)
	projects, total, degraded, err := h.projectUseCase.ListByStatus(
		c.Request().Context(), actor, kind, c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, projects, total, params.Page, params.PageSize, degraded)
}

package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

// EnvironmentHandlers handles HTTP requests for environments (tenants)
type EnvironmentHandlers struct {
	environmentService services.EnvironmentService
}

func NewEnvironmentHandlers(environmentService services.EnvironmentService) *EnvironmentHandlers {
	return &EnvironmentHandlers{environmentService: environmentService}
}

type EnvironmentRequest struct {
	CNPJ      string  `json:"cnpj"`
	TradeName string  `json:"tradeName"`
	LegalName *string `json:"legalName"`
}

func (r *EnvironmentRequest) toModel() *models.Environment {
	return &models.Environment{CNPJ: r.CNPJ, TradeName: r.TradeName, LegalName: r.LegalName}
}

// ListEnvironments handles GET /environments
func (h *EnvironmentHandlers) ListEnvironments(c echo.Context) error {
	envs, err := h.environmentService.List(c.Request().Context(), common.OptionalString(c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"environments": envs})
}

// CreateEnvironment handles POST /environments
func (h *EnvironmentHandlers) CreateEnvironment(c echo.Context) error {
	var req EnvironmentRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	message, err := h.environmentService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, message, nil)
}

// UpdateEnvironment handles PUT /environments/:id
func (h *EnvironmentHandlers) UpdateEnvironment(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req EnvironmentRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	env := req.toModel()
	env.ID = id
	message, err := h.environmentService.Update(c.Request().Context(), env)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, message, nil)
}

// DeleteEnvironment handles DELETE /environments/:id
func (h *EnvironmentHandlers) DeleteEnvironment(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	message, err := h.environmentService.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, message, nil)
}

package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/middleware"
	"flexgestor/internal/models"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles HTTP requests for users and their environment access
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers handles GET /users (users of the caller's environment)
func (h *UserHandlers) ListUsers(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), tc, common.OptionalString(c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"users": users})
}

// GetUserEnvironments handles GET /users/:id/environments
func (h *UserHandlers) GetUserEnvironments(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	ids, err := h.userService.EnvironmentIDs(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"environmentIds": ids})
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req models.UserInput
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	id, err := h.userService.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, "User created successfully!", common.Envelope{"newId": id})
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req models.UserInput
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	if err := h.userService.Update(c.Request().Context(), id, &req); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "User updated successfully!", nil)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), tc, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "User deleted successfully!", nil)
}

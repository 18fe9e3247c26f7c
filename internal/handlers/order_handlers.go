package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/middleware"
	"flexgestor/internal/models"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// ListOrders handles GET /orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	filter := &models.OrderSearchFilter{
		Status:       common.OptionalString(c.QueryParam("status")),
		CustomerName: common.OptionalString(c.QueryParam("customerName")),
	}
	orders, err := h.orderService.List(c.Request().Context(), tc, filter)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"orders": orders})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetByID(c.Request().Context(), tc, id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"order": order})
}

// CreateOrder handles POST /orders. Totals are always computed server side.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	var req models.OrderInput
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	id, err := h.orderService.Create(c.Request().Context(), tc, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, "Order created successfully!", common.Envelope{"orderId": id})
}

// UpdateOrder handles PUT /orders/:id (full replace of the line set)
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req models.OrderInput
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("Invalid request format.")
	}

	if err := h.orderService.Update(c.Request().Context(), tc, id, &req); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Order updated successfully!", nil)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(c.Request().Context(), tc, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Order deleted successfully!", nil)
}

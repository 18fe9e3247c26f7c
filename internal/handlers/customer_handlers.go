package handlers

import (
	"net/http"

	"flexgestor/internal/common"
	"flexgestor/internal/middleware"
	"flexgestor/internal/models"
	"flexgestor/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

// CustomerRequest is the body of customer create and update
type CustomerRequest struct {
	Name         string           `json:"name" validate:"required"`
	Phone        *string          `json:"phone"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	Document     *string          `json:"document"`
	Street       *string          `json:"street"`
	ZipCode      *string          `json:"zipCode"`
	CreditLimit  *decimal.Decimal `json:"creditLimit"`
	Tags         *string          `json:"tags"`
	BusinessLine *string          `json:"businessLine"`
}

func (r *CustomerRequest) toModel() *models.Customer {
	return &models.Customer{
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Document:     r.Document,
		Street:       r.Street,
		ZipCode:      r.ZipCode,
		CreditLimit:  r.CreditLimit,
		Tags:         r.Tags,
		BusinessLine: r.BusinessLine,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	customers, err := h.customerService.List(c.Request().Context(), tc, common.OptionalString(c.QueryParam("filter")))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"customers": customers})
}

// CreateCustomer handles POST /customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	var req CustomerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.customerService.Create(c.Request().Context(), tc, req.toModel())
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, "Customer created successfully!", common.Envelope{"newId": id})
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req CustomerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		return err
	}

	customer := req.toModel()
	customer.ID = id
	if err := h.customerService.Update(c.Request().Context(), tc, customer); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Customer updated successfully!", nil)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(c.Request().Context(), tc, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Customer deleted successfully!", nil)
}

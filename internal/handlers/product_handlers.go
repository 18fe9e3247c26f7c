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

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
}

func (r *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
	}
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	products, err := h.productService.List(c.Request().Context(), tc, common.OptionalString(c.QueryParam("name")))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{"products": products})
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.productService.Create(c.Request().Context(), tc, req.toModel())
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, "Product created successfully!", common.Envelope{"newId": id})
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		return err
	}

	product := req.toModel()
	product.ID = id
	if err := h.productService.Update(c.Request().Context(), tc, product); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Product updated successfully!", nil)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), tc, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Product deleted successfully!", nil)
}

// UploadProductImage handles PUT /products/:id/image (multipart field "image")
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.ValidationError("Image file is required.")
	}
	src, err := file.Open()
	if err != nil {
		return common.InternalError("Failed to read uploaded image.", err)
	}
	defer src.Close()

	key, err := h.productService.UploadImage(c.Request().Context(), tc, id, src, file.Size, file.Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "Image uploaded successfully!", common.Envelope{"imageKey": key})
}

// GetProductImage handles GET /products/:id/image
func (h *ProductHandlers) GetProductImage(c echo.Context) error {
	tc, err := middleware.TenantFromRequest(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	url, err := h.productService.ImageURL(c.Request().Context(), tc, id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, "", common.Envelope{
		"url":       url,
		"expiresIn": int(services.ImageURLExpiry.Seconds()),
	})
}

package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"

	"github.com/labstack/gommon/log"
)

// ImageURLExpiry bounds the lifetime of presigned product image links
const ImageURLExpiry = 15 * time.Minute

const productNotFound = "Product not found or does not belong to this environment."

type ProductService interface {
	List(ctx context.Context, tc common.TenantContext, name *string) ([]*models.Product, error)
	Create(ctx context.Context, tc common.TenantContext, product *models.Product) (int64, error)
	Update(ctx context.Context, tc common.TenantContext, product *models.Product) error
	Delete(ctx context.Context, tc common.TenantContext, id int64) error
	UploadImage(ctx context.Context, tc common.TenantContext, id int64, reader io.Reader, size int64, contentType string) (string, error)
	ImageURL(ctx context.Context, tc common.TenantContext, id int64) (string, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	minioService MinioService
}

func NewProductService(productRepo repositories.ProductRepository, minioService MinioService) ProductService {
	return &productService{
		productRepo:  productRepo,
		minioService: minioService,
	}
}

// ProductImageKey is the object name of a product image inside the bucket
func ProductImageKey(environmentID, productID int64) string {
	return fmt.Sprintf("environments/%d/products/%d", environmentID, productID)
}

func (s *productService) List(ctx context.Context, tc common.TenantContext, name *string) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx, tc.TenantID, name)
	if err != nil {
		return nil, common.InternalError("Failed to list products.", err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, tc common.TenantContext, product *models.Product) (int64, error) {
	if err := validateProduct(product); err != nil {
		return 0, err
	}
	product.EnvironmentID = tc.TenantID

	status, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return 0, common.InternalError("Failed to create product.", err)
	}
	if err := requireSuccess(status); err != nil {
		return 0, err
	}
	return newID(status), nil
}

func (s *productService) Update(ctx context.Context, tc common.TenantContext, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.EnvironmentID = tc.TenantID

	status, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return common.InternalError("Failed to update product.", err)
	}
	return requireAffected(status, productNotFound)
}

func (s *productService) Delete(ctx context.Context, tc common.TenantContext, id int64) error {
	status, err := s.productRepo.Delete(ctx, tc.TenantID, id)
	if err != nil {
		return common.InternalError("Failed to delete product.", err)
	}
	if err := requireAffected(status, productNotFound); err != nil {
		return err
	}

	// the image is orphaned once the row is gone
	if s.minioService != nil {
		if err := s.minioService.DeleteImage(ctx, ProductImageKey(tc.TenantID, id)); err != nil {
			log.Warnf("delete image of product %d: %v", id, err)
		}
	}
	return nil
}

// UploadImage stores the image under the tenant's prefix and returns its object key
func (s *productService) UploadImage(ctx context.Context, tc common.TenantContext, id int64, reader io.Reader, size int64, contentType string) (string, error) {
	if err := s.ensureOwned(ctx, tc, id); err != nil {
		return "", err
	}

	if err := s.minioService.EnsureBucketExists(ctx); err != nil {
		return "", common.InternalError("Failed to prepare image storage.", err)
	}

	key := ProductImageKey(tc.TenantID, id)
	if err := s.minioService.UploadImage(ctx, key, reader, size, contentType); err != nil {
		return "", common.InternalError("Failed to upload product image.", err)
	}
	return key, nil
}

func (s *productService) ImageURL(ctx context.Context, tc common.TenantContext, id int64) (string, error) {
	if err := s.ensureOwned(ctx, tc, id); err != nil {
		return "", err
	}

	url, err := s.minioService.GetPresignedURL(ctx, ProductImageKey(tc.TenantID, id), ImageURLExpiry)
	if err != nil {
		return "", common.InternalError("Failed to generate image URL.", err)
	}
	return url, nil
}

func (s *productService) ensureOwned(ctx context.Context, tc common.TenantContext, id int64) error {
	exists, err := s.productRepo.Exists(ctx, tc.TenantID, id)
	if err != nil {
		return common.InternalError("Failed to fetch product.", err)
	}
	if !exists {
		return common.NotFoundError(productNotFound)
	}
	return nil
}

func validateProduct(product *models.Product) error {
	if product.Name == "" {
		return common.ValidationError("Name and price are required.")
	}
	if product.Price.IsNegative() {
		return common.ValidationError("Price cannot be negative.")
	}
	return nil
}

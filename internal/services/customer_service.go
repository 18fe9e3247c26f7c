package services

import (
	"context"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
)

const customerNotFound = "Customer not found or does not belong to this environment."

type CustomerService interface {
	List(ctx context.Context, tc common.TenantContext, filter *string) ([]*models.Customer, error)
	Create(ctx context.Context, tc common.TenantContext, customer *models.Customer) (int64, error)
	Update(ctx context.Context, tc common.TenantContext, customer *models.Customer) error
	Delete(ctx context.Context, tc common.TenantContext, id int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) List(ctx context.Context, tc common.TenantContext, filter *string) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx, tc.TenantID, filter)
	if err != nil {
		return nil, common.InternalError("Failed to list customers.", err)
	}
	return customers, nil
}

func (s *customerService) Create(ctx context.Context, tc common.TenantContext, customer *models.Customer) (int64, error) {
	if customer.Name == "" {
		return 0, common.ValidationError("Customer name is required.")
	}
	customer.EnvironmentID = tc.TenantID

	status, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		return 0, common.InternalError("Failed to create customer.", err)
	}
	if err := requireSuccess(status); err != nil {
		return 0, err
	}
	return newID(status), nil
}

func (s *customerService) Update(ctx context.Context, tc common.TenantContext, customer *models.Customer) error {
	if customer.Name == "" {
		return common.ValidationError("Customer name is required.")
	}
	customer.EnvironmentID = tc.TenantID

	status, err := s.customerRepo.Update(ctx, customer)
	if err != nil {
		return common.InternalError("Failed to update customer.", err)
	}
	return requireAffected(status, customerNotFound)
}

func (s *customerService) Delete(ctx context.Context, tc common.TenantContext, id int64) error {
	status, err := s.customerRepo.Delete(ctx, tc.TenantID, id)
	if err != nil {
		return common.InternalError("Failed to delete customer.", err)
	}
	return requireAffected(status, customerNotFound)
}

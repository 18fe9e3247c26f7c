package services

import (
	"context"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
)

type EnvironmentService interface {
	List(ctx context.Context, filter *string) ([]*models.Environment, error)
	Create(ctx context.Context, env *models.Environment) (string, error)
	Update(ctx context.Context, env *models.Environment) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type environmentService struct {
	environmentRepo repositories.EnvironmentRepository
}

func NewEnvironmentService(environmentRepo repositories.EnvironmentRepository) EnvironmentService {
	return &environmentService{environmentRepo: environmentRepo}
}

func (s *environmentService) List(ctx context.Context, filter *string) ([]*models.Environment, error) {
	envs, err := s.environmentRepo.List(ctx, filter)
	if err != nil {
		return nil, common.InternalError("Failed to list environments.", err)
	}
	return envs, nil
}

// Create returns the procedure's message on success
func (s *environmentService) Create(ctx context.Context, env *models.Environment) (string, error) {
	if env.CNPJ == "" || env.TradeName == "" {
		return "", common.ValidationError("CNPJ and trade name are required.")
	}
	status, err := s.environmentRepo.Create(ctx, env)
	if err != nil {
		return "", common.InternalError("Failed to create environment.", err)
	}
	if err := requireSuccess(status); err != nil {
		return "", err
	}
	return status.Message, nil
}

func (s *environmentService) Update(ctx context.Context, env *models.Environment) (string, error) {
	if env.CNPJ == "" || env.TradeName == "" {
		return "", common.ValidationError("CNPJ and trade name are required.")
	}
	status, err := s.environmentRepo.Update(ctx, env)
	if err != nil {
		return "", common.InternalError("Failed to update environment.", err)
	}
	if err := requireSuccess(status); err != nil {
		return "", err
	}
	return status.Message, nil
}

func (s *environmentService) Delete(ctx context.Context, id int64) (string, error) {
	status, err := s.environmentRepo.Delete(ctx, id)
	if err != nil {
		return "", common.InternalError("Failed to delete environment.", err)
	}
	if err := requireSuccess(status); err != nil {
		return "", err
	}
	return status.Message, nil
}

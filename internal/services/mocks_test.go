package services

import (
	"context"
	"io"
	"time"

	"flexgestor/internal/models"
	"flexgestor/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, environmentID int64, name *string) ([]*models.Product, error) {
	args := m.Called(ctx, environmentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, environmentID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockProductRepository) PriceOf(ctx context.Context, environmentID, id int64) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, environmentID, id)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockProductRepository) Exists(ctx context.Context, environmentID, id int64) (bool, error) {
	args := m.Called(ctx, environmentID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) WithTx(tx pgx.Tx) repositories.ProductRepository {
	return m
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockCacheService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) ResetRateLimit(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, environmentID int64, filter *string) ([]*models.Customer, error) {
	args := m.Called(ctx, environmentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, environmentID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

type MockEnvironmentRepository struct {
	mock.Mock
}

func (m *MockEnvironmentRepository) List(ctx context.Context, filter *string) ([]*models.Environment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Environment), args.Error(1)
}

func (m *MockEnvironmentRepository) Create(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockEnvironmentRepository) Update(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

func (m *MockEnvironmentRepository) Delete(ctx context.Context, id int64) (*models.ProcedureStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcedureStatus), args.Error(1)
}

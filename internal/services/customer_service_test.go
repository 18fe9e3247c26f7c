package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"flexgestor/internal/common"
	"flexgestor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	customerRepo *MockCustomerRepository
	service      CustomerService
	tc           common.TenantContext
	ctx          context.Context
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.customerRepo = new(MockCustomerRepository)
	suite.service = NewCustomerService(suite.customerRepo)
	suite.tc = common.TenantContext{UserID: 3, TenantID: 1}
	suite.ctx = context.Background()
}

func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.customerRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func inCallerTenant(customer *models.Customer) bool {
	return customer.EnvironmentID == 1
}

func (suite *CustomerServiceTestSuite) TestCreate_ScopesToCallerTenant() {
	customer := &models.Customer{EnvironmentID: 99, Name: "Padaria Central"}
	suite.customerRepo.On("Create", suite.ctx, mock.MatchedBy(inCallerTenant)).
		Return(&models.ProcedureStatus{Success: true, NewID: int64Ptr(9)}, nil)

	id, err := suite.service.Create(suite.ctx, suite.tc, customer)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(9), id)
	assert.Equal(suite.T(), int64(1), customer.EnvironmentID)
}

func (suite *CustomerServiceTestSuite) TestCreate_RequiresName() {
	_, err := suite.service.Create(suite.ctx, suite.tc, &models.Customer{})

	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *CustomerServiceTestSuite) TestCreate_ProcedureRejection() {
	suite.customerRepo.On("Create", suite.ctx, mock.Anything).
		Return(&models.ProcedureStatus{Success: false, Message: "Documento já cadastrado."}, nil)

	_, err := suite.service.Create(suite.ctx, suite.tc, &models.Customer{Name: "Padaria Central"})

	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	assert.Equal(suite.T(), "Documento já cadastrado.", common.MessageOf(err))
}

func (suite *CustomerServiceTestSuite) TestUpdate_OtherTenantIsNotFound() {
	customer := &models.Customer{ID: 5, EnvironmentID: 2, Name: "Padaria Central"}
	suite.customerRepo.On("Update", suite.ctx, mock.MatchedBy(inCallerTenant)).
		Return(&models.ProcedureStatus{Success: true, RowsAffected: int64Ptr(0)}, nil)

	err := suite.service.Update(suite.ctx, suite.tc, customer)

	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
	assert.Equal(suite.T(), http.StatusNotFound, common.StatusOf(err))
}

func (suite *CustomerServiceTestSuite) TestUpdate_Success() {
	suite.customerRepo.On("Update", suite.ctx, mock.MatchedBy(inCallerTenant)).
		Return(&models.ProcedureStatus{Success: true, RowsAffected: int64Ptr(1)}, nil)

	err := suite.service.Update(suite.ctx, suite.tc, &models.Customer{ID: 5, Name: "Padaria Central"})

	assert.NoError(suite.T(), err)
}

func (suite *CustomerServiceTestSuite) TestDelete_OtherTenantIsNotFound() {
	suite.customerRepo.On("Delete", suite.ctx, int64(1), int64(5)).
		Return(&models.ProcedureStatus{Success: true, RowsAffected: int64Ptr(0)}, nil)

	err := suite.service.Delete(suite.ctx, suite.tc, 5)

	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *CustomerServiceTestSuite) TestDelete_ExplainedRejection() {
	suite.customerRepo.On("Delete", suite.ctx, int64(1), int64(5)).
		Return(&models.ProcedureStatus{Success: false, Message: "Cliente possui pedidos.", RowsAffected: int64Ptr(0)}, nil)

	err := suite.service.Delete(suite.ctx, suite.tc, 5)

	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	assert.Equal(suite.T(), "Cliente possui pedidos.", common.MessageOf(err))
}

func (suite *CustomerServiceTestSuite) TestList_RepositoryFailureIsInternal() {
	suite.customerRepo.On("List", suite.ctx, int64(1), (*string)(nil)).Return(nil, errors.New("timeout"))

	_, err := suite.service.List(suite.ctx, suite.tc, nil)

	assert.Equal(suite.T(), common.KindInternal, common.KindOf(err))
}

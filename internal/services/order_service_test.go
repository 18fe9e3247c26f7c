package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
	"flexgestor/pkg/database"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// decimalArg matches a decimal argument by value, ignoring its exponent
type decimalArg struct {
	want decimal.Decimal
}

func (a decimalArg) Match(v interface{}) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(a.want)
}

func money(s string) decimalArg {
	return decimalArg{want: decimal.RequireFromString(s)}
}

func lenient(s string) models.LenientDecimal {
	return models.LenientDecimal{Decimal: decimal.RequireFromString(s)}
}

func int64Ptr(i int64) *int64    { return &i }
func stringPtr(s string) *string { return &s }

const (
	priceQuery      = `SELECT price FROM products WHERE (id = $1 AND environment_id = $2)`
	insertOrderStmt = `INSERT INTO orders (environment_id,customer_id,status,payment_status,payment_method,order_type,subtotal,discount,freight,total,user_id,created_at)`
	updateOrderStmt = `UPDATE orders SET customer_id = $1`
	insertItemStmt  = `INSERT INTO order_items (order_id,product_id,quantity,unit_price) VALUES ($1,$2,$3,$4)`
	deleteItemsStmt = `DELETE FROM order_items WHERE order_id = $1`
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service *orderService
	tc      common.TenantContext
	now     time.Time
	ctx     context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock

	suite.now = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	suite.service = NewOrderService(
		database.NewTxManager(mock),
		repositories.NewOrderRepo(mock),
		repositories.NewOrderItemRepo(mock),
		repositories.NewProductRepo(mock),
	).(*orderService)
	suite.service.now = func() time.Time { return suite.now }

	suite.tc = common.TenantContext{UserID: 3, Username: "ana", TenantID: 1, TenantName: "Loja Centro"}
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) expectPrice(productID int64, price string) {
	suite.mock.ExpectQuery(regexp.QuoteMeta(priceQuery)).
		WithArgs(productID, suite.tc.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"price"}).AddRow(decimal.RequireFromString(price)))
}

func (suite *OrderServiceTestSuite) TestCreate_ComputesTotalsFromCatalogPrices() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 1, Quantity: 2}},
		Discount:   lenient("5"),
		Freight:    lenient("3"),
	}

	suite.mock.ExpectBegin()
	suite.expectPrice(1, "10.00")
	suite.mock.ExpectQuery(regexp.QuoteMeta(insertOrderStmt)).
		WithArgs(int64(1), int64(9), "Aberto", models.DefaultPaymentStatus, (*string)(nil), (*string)(nil),
			money("20"), money("5"), money("3"), money("18"), int64Ptr(3), suite.now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.mock.ExpectExec(regexp.QuoteMeta(insertItemStmt)).
		WithArgs(int64(42), int64(1), 2, money("10")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	id, err := suite.service.Create(suite.ctx, suite.tc, input)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), id)
}

func (suite *OrderServiceTestSuite) TestCreate_SeveralLines() {
	input := &models.OrderInput{
		CustomerID:    9,
		Status:        "Aberto",
		Items:         []models.OrderLineInput{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}},
		PaymentStatus: stringPtr("Pago"),
		PaymentMethod: stringPtr("Pix"),
	}

	suite.mock.ExpectBegin()
	suite.expectPrice(1, "2.50")
	suite.expectPrice(2, "0.99")
	suite.mock.ExpectQuery(regexp.QuoteMeta(insertOrderStmt)).
		WithArgs(int64(1), int64(9), "Aberto", "Pago", stringPtr("Pix"), (*string)(nil),
			money("8.49"), money("0"), money("0"), money("8.49"), int64Ptr(3), suite.now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(43)))
	suite.mock.ExpectExec(regexp.QuoteMeta(insertItemStmt)).
		WithArgs(int64(43), int64(1), 3, money("2.50")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(regexp.QuoteMeta(insertItemStmt)).
		WithArgs(int64(43), int64(2), 1, money("0.99")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	id, err := suite.service.Create(suite.ctx, suite.tc, input)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(43), id)
}

func (suite *OrderServiceTestSuite) TestCreate_UnknownProductRollsBack() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 1, Quantity: 1}, {ProductID: 77, Quantity: 1}},
	}

	suite.mock.ExpectBegin()
	suite.expectPrice(1, "10.00")
	suite.mock.ExpectQuery(regexp.QuoteMeta(priceQuery)).
		WithArgs(int64(77), suite.tc.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"price"}))
	suite.mock.ExpectRollback()

	id, err := suite.service.Create(suite.ctx, suite.tc, input)

	require.Error(suite.T(), err)
	assert.Zero(suite.T(), id)
	assert.Equal(suite.T(), common.KindOrderCreationFailed, common.KindOf(err))
	assert.True(suite.T(), common.IsKind(err, common.KindReference))
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, common.StatusOf(err))
	assert.Contains(suite.T(), err.Error(), "product 77 not found")
}

func (suite *OrderServiceTestSuite) TestCreate_LineInsertFailureRollsBack() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 1, Quantity: 1}},
	}

	suite.mock.ExpectBegin()
	suite.expectPrice(1, "10.00")
	suite.mock.ExpectQuery(regexp.QuoteMeta(insertOrderStmt)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(44)))
	suite.mock.ExpectExec(regexp.QuoteMeta(insertItemStmt)).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	_, err := suite.service.Create(suite.ctx, suite.tc, input)

	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindOrderCreationFailed, common.KindOf(err))
	assert.Equal(suite.T(), http.StatusInternalServerError, common.StatusOf(err))
}

func (suite *OrderServiceTestSuite) TestCreate_RollbackFailureIsReported() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 1, Quantity: 1}},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(priceQuery)).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback().WillReturnError(errors.New("conn closed"))

	_, err := suite.service.Create(suite.ctx, suite.tc, input)

	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindRollbackFailed, common.KindOf(err))
	var rbErr *database.RollbackError
	assert.ErrorAs(suite.T(), err, &rbErr)
}

func (suite *OrderServiceTestSuite) TestCreate_ValidationHappensBeforeTransaction() {
	cases := []*models.OrderInput{
		{Status: "Aberto", Items: []models.OrderLineInput{{ProductID: 1, Quantity: 1}}},
		{CustomerID: 9, Status: "Aberto"},
		{CustomerID: 9, Items: []models.OrderLineInput{{ProductID: 0, Quantity: 1}}},
		{CustomerID: 9, Items: []models.OrderLineInput{{ProductID: 1, Quantity: 0}}},
	}

	for _, input := range cases {
		_, err := suite.service.Create(suite.ctx, suite.tc, input)
		assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	}
}

func (suite *OrderServiceTestSuite) TestUpdate_ReplacesLines() {
	input := &models.OrderInput{
		CustomerID:        9,
		Status:            "Fechado",
		Items:             []models.OrderLineInput{{ProductID: 2, Quantity: 4}},
		Discount:          lenient("1.005"),
		ResponsibleUserID: int64Ptr(8),
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteItemsStmt)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.expectPrice(2, "1.25")
	suite.mock.ExpectExec(regexp.QuoteMeta(updateOrderStmt)).
		WithArgs(int64(9), "Fechado", money("5"), money("1.01"), money("0"), money("3.99"),
			models.DefaultPaymentStatus, (*string)(nil), (*string)(nil), int64Ptr(8), int64(42), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(regexp.QuoteMeta(insertItemStmt)).
		WithArgs(int64(42), int64(2), 4, money("1.25")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.service.Update(suite.ctx, suite.tc, 42, input)

	require.NoError(suite.T(), err)
}

func (suite *OrderServiceTestSuite) TestUpdate_OtherTenantIsNotFound() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 2, Quantity: 1}},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteItemsStmt)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.expectPrice(2, "1.25")
	suite.mock.ExpectExec(regexp.QuoteMeta(updateOrderStmt)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.service.Update(suite.ctx, suite.tc, 42, input)

	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
	assert.Equal(suite.T(), http.StatusNotFound, common.StatusOf(err))
}

func (suite *OrderServiceTestSuite) TestUpdate_UnknownProduct() {
	input := &models.OrderInput{
		CustomerID: 9,
		Status:     "Aberto",
		Items:      []models.OrderLineInput{{ProductID: 77, Quantity: 1}},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteItemsStmt)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectQuery(regexp.QuoteMeta(priceQuery)).
		WithArgs(int64(77), suite.tc.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"price"}))
	suite.mock.ExpectRollback()

	err := suite.service.Update(suite.ctx, suite.tc, 42, input)

	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindOrderUpdateFailed, common.KindOf(err))
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, common.StatusOf(err))
}

func (suite *OrderServiceTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`FROM sp_get_order($1, $2)`)).
		WithArgs(int64(42), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	order, err := suite.service.GetByID(suite.ctx, suite.tc, 42)

	assert.Nil(suite.T(), order)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *OrderServiceTestSuite) TestDelete_NoRowsIsNotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`FROM sp_delete_order($1, $2)`)).
		WithArgs(int64(42), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"success", "message", "new_id", "rows_affected"}).
			AddRow(true, "", nil, int64Ptr(0)))

	err := suite.service.Delete(suite.ctx, suite.tc, 42)

	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

package services

import (
	"context"
	"errors"
	"time"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
	"flexgestor/pkg/database"

	"github.com/jackc/pgx/v5"
)

type OrderService interface {
	List(ctx context.Context, tc common.TenantContext, filter *models.OrderSearchFilter) ([]*models.Order, error)
	GetByID(ctx context.Context, tc common.TenantContext, id int64) (*models.Order, error)
	Create(ctx context.Context, tc common.TenantContext, input *models.OrderInput) (int64, error)
	Update(ctx context.Context, tc common.TenantContext, id int64, input *models.OrderInput) error
	Delete(ctx context.Context, tc common.TenantContext, id int64) error
}

type orderService struct {
	txManager   *database.TxManager
	orderRepo   repositories.OrderRepository
	itemRepo    repositories.OrderItemRepository
	productRepo repositories.ProductRepository
	now         func() time.Time
}

func NewOrderService(txManager *database.TxManager, orderRepo repositories.OrderRepository, itemRepo repositories.OrderItemRepository, productRepo repositories.ProductRepository) OrderService {
	return &orderService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func (s *orderService) List(ctx context.Context, tc common.TenantContext, filter *models.OrderSearchFilter) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx, tc.TenantID, filter)
	if err != nil {
		return nil, common.InternalError("Failed to list orders.", err)
	}
	return orders, nil
}

func (s *orderService) GetByID(ctx context.Context, tc common.TenantContext, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, tc.TenantID, id)
	if err != nil {
		return nil, common.InternalError("Failed to fetch order.", err)
	}
	if order == nil {
		return nil, common.NotFoundError("Order not found or does not belong to this environment.")
	}

	items, err := s.itemRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, common.InternalError("Failed to fetch order items.", err)
	}
	order.Items = items
	return order, nil
}

// Create prices every line from the tenant's catalog and writes the order and
// its lines in one transaction. Nothing is persisted when any step fails.
func (s *orderService) Create(ctx context.Context, tc common.TenantContext, input *models.OrderInput) (int64, error) {
	if err := validateOrderInput(input); err != nil {
		return 0, err
	}

	var orderID int64
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		lines, err := priceLines(ctx, s.productRepo.WithTx(tx), tc.TenantID, input.Items)
		if err != nil {
			return err
		}

		userID := tc.UserID
		order := s.buildOrder(tc, input, lines, &userID)
		order.CreatedAt = s.now()

		id, err := s.orderRepo.WithTx(tx).Insert(ctx, order)
		if err != nil {
			return err
		}
		if err := s.insertLines(ctx, s.itemRepo.WithTx(tx), id, lines); err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, transactionError(common.KindOrderCreationFailed, "Failed to create order", err)
	}
	return orderID, nil
}

// Update replaces the whole line set and recomputes the money fields. The
// header update is filtered by id and tenant; when it matches nothing the
// transaction is rolled back.
func (s *orderService) Update(ctx context.Context, tc common.TenantContext, id int64, input *models.OrderInput) error {
	if err := validateOrderInput(input); err != nil {
		return err
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		items := s.itemRepo.WithTx(tx)
		if err := items.DeleteByOrder(ctx, id); err != nil {
			return err
		}

		lines, err := priceLines(ctx, s.productRepo.WithTx(tx), tc.TenantID, input.Items)
		if err != nil {
			return err
		}

		responsible := tc.UserID
		if input.ResponsibleUserID != nil {
			responsible = *input.ResponsibleUserID
		}
		order := s.buildOrder(tc, input, lines, &responsible)
		order.ID = id

		matched, err := s.orderRepo.WithTx(tx).Update(ctx, order)
		if err != nil {
			return err
		}
		if matched == 0 {
			return common.NotFoundError("Order not found or does not belong to this environment.")
		}

		return s.insertLines(ctx, items, id, lines)
	})
	if err != nil {
		var rbErr *database.RollbackError
		if !errors.As(err, &rbErr) && common.KindOf(err) == common.KindNotFound {
			return err
		}
		return transactionError(common.KindOrderUpdateFailed, "Failed to update order", err)
	}
	return nil
}

func (s *orderService) Delete(ctx context.Context, tc common.TenantContext, id int64) error {
	status, err := s.orderRepo.Delete(ctx, tc.TenantID, id)
	if err != nil {
		return common.InternalError("Failed to delete order.", err)
	}
	return requireAffected(status, "Order not found or does not belong to this environment.")
}

func (s *orderService) buildOrder(tc common.TenantContext, input *models.OrderInput, lines []pricedLine, userID *int64) *models.Order {
	totals := computeTotals(lines, input.Discount.Decimal, input.Freight.Decimal)

	paymentStatus := models.DefaultPaymentStatus
	if input.PaymentStatus != nil && *input.PaymentStatus != "" {
		paymentStatus = *input.PaymentStatus
	}

	return &models.Order{
		EnvironmentID: tc.TenantID,
		CustomerID:    input.CustomerID,
		Status:        input.Status,
		PaymentStatus: paymentStatus,
		PaymentMethod: input.PaymentMethod,
		OrderType:     input.OrderType,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Freight:       totals.Freight,
		Total:         totals.Total,
		UserID:        userID,
	}
}

func (s *orderService) insertLines(ctx context.Context, items repositories.OrderItemRepository, orderID int64, lines []pricedLine) error {
	for _, l := range lines {
		item := &models.OrderItem{
			OrderID:   orderID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
		if err := items.Insert(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// transactionError classifies the failure of a transactional unit of work
func transactionError(kind common.ErrorKind, message string, err error) error {
	var rbErr *database.RollbackError
	if errors.As(err, &rbErr) {
		return common.NewError(common.KindRollbackFailed, message+": transaction could not be rolled back.", err)
	}
	return common.NewError(kind, message, err)
}

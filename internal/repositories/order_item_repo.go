package repositories

import (
	"context"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
	Insert(ctx context.Context, item *models.OrderItem) error
	DeleteByOrder(ctx context.Context, orderID int64) error
	WithTx(tx pgx.Tx) OrderItemRepository
}

type orderItemRepo struct {
	db database.DBTX
}

func NewOrderItemRepo(db database.DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) WithTx(tx pgx.Tx) OrderItemRepository {
	return &orderItemRepo{db: tx}
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_name, quantity, unit_price FROM sp_get_order_items($1)`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.OrderItem{}
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) Insert(ctx context.Context, item *models.OrderItem) error {
	query, args, err := psql.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "unit_price").
		Values(item.OrderID, item.ProductID, item.Quantity, item.UnitPrice).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func (r *orderItemRepo) DeleteByOrder(ctx context.Context, orderID int64) error {
	query, args, err := psql.Delete("order_items").Where(sq.Eq{"order_id": orderID}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

package repositories

import (
	"context"
	"errors"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	List(ctx context.Context, environmentID int64, filter *models.OrderSearchFilter) ([]*models.Order, error)
	// GetByID returns nil when the order does not exist inside the tenant
	GetByID(ctx context.Context, environmentID, id int64) (*models.Order, error)
	Insert(ctx context.Context, order *models.Order) (int64, error)
	// Update rewrites the mutable header fields and reports how many rows matched id and tenant
	Update(ctx context.Context, order *models.Order) (int64, error)
	Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error)
	WithTx(tx pgx.Tx) OrderRepository
}

type orderRepo struct {
	db database.DBTX
}

func NewOrderRepo(db database.DBTX) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithTx(tx pgx.Tx) OrderRepository {
	return &orderRepo{db: tx}
}

const orderColumns = `id, environment_id, customer_id, customer_name, status, payment_status, payment_method, order_type, subtotal, discount, freight, total, user_id, created_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.EnvironmentID, &o.CustomerID, &o.CustomerName, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.OrderType, &o.Subtotal, &o.Discount, &o.Freight, &o.Total, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) List(ctx context.Context, environmentID int64, filter *models.OrderSearchFilter) ([]*models.Order, error) {
	if filter == nil {
		filter = &models.OrderSearchFilter{}
	}
	query := `SELECT ` + orderColumns + ` FROM sp_list_orders($1, $2, $3)`
	rows, err := r.db.Query(ctx, query, environmentID, nullable(filter.Status), nullable(filter.CustomerName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) GetByID(ctx context.Context, environmentID, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM sp_get_order($1, $2)`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id, environmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Insert(ctx context.Context, o *models.Order) (int64, error) {
	query, args, err := psql.Insert("orders").
		Columns("environment_id", "customer_id", "status", "payment_status", "payment_method", "order_type",
			"subtotal", "discount", "freight", "total", "user_id", "created_at").
		Values(o.EnvironmentID, o.CustomerID, o.Status, o.PaymentStatus, o.PaymentMethod, o.OrderType,
			o.Subtotal, o.Discount, o.Freight, o.Total, o.UserID, o.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *orderRepo) Update(ctx context.Context, o *models.Order) (int64, error) {
	query, args, err := psql.Update("orders").
		Set("customer_id", o.CustomerID).
		Set("status", o.Status).
		Set("subtotal", o.Subtotal).
		Set("discount", o.Discount).
		Set("freight", o.Freight).
		Set("total", o.Total).
		Set("payment_status", o.PaymentStatus).
		Set("payment_method", o.PaymentMethod).
		Set("order_type", o.OrderType).
		Set("user_id", o.UserID).
		Where(sq.And{sq.Eq{"id": o.ID}, sq.Eq{"environment_id": o.EnvironmentID}}).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepo) Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_delete_order($1, $2)`
	return scanStatus(r.db.QueryRow(ctx, query, id, environmentID))
}

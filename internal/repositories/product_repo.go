package repositories

import (
	"context"
	"errors"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	List(ctx context.Context, environmentID int64, name *string) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error)
	Update(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error)
	Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error)
	// PriceOf returns the current price of a product inside the tenant; found is
	// false when the product does not exist there.
	PriceOf(ctx context.Context, environmentID, id int64) (price decimal.Decimal, found bool, err error)
	Exists(ctx context.Context, environmentID, id int64) (bool, error)
	WithTx(tx pgx.Tx) ProductRepository
}

type productRepo struct {
	db database.DBTX
}

func NewProductRepo(db database.DBTX) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) WithTx(tx pgx.Tx) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) List(ctx context.Context, environmentID int64, name *string) ([]*models.Product, error) {
	query := `SELECT id, environment_id, name, description, price FROM sp_list_products($1, $2)`
	rows, err := r.db.Query(ctx, query, environmentID, nullable(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.EnvironmentID, &product.Name, &product.Description, &product.Price); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_create_product($1, $2, $3, $4)`
	return scanStatus(r.db.QueryRow(ctx, query, product.EnvironmentID, product.Name, product.Description, product.Price))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_update_product($1, $2, $3, $4, $5)`
	return scanStatus(r.db.QueryRow(ctx, query, product.ID, product.EnvironmentID, product.Name, product.Description, product.Price))
}

func (r *productRepo) Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_delete_product($1, $2)`
	return scanStatus(r.db.QueryRow(ctx, query, id, environmentID))
}

func (r *productRepo) PriceOf(ctx context.Context, environmentID, id int64) (decimal.Decimal, bool, error) {
	query, args, err := psql.Select("price").
		From("products").
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"environment_id": environmentID}}).
		ToSql()
	if err != nil {
		return decimal.Zero, false, err
	}

	var price decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return price, true, nil
}

func (r *productRepo) Exists(ctx context.Context, environmentID, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND environment_id = $2)`
	if err := r.db.QueryRow(ctx, query, id, environmentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

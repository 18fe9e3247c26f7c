package repositories

import (
	"context"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"
)

type CustomerRepository interface {
	List(ctx context.Context, environmentID int64, filter *string) ([]*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.ProcedureStatus, error)
	Update(ctx context.Context, customer *models.Customer) (*models.ProcedureStatus, error)
	Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error)
}

type customerRepo struct {
	db database.DBTX
}

func NewCustomerRepo(db database.DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) List(ctx context.Context, environmentID int64, filter *string) ([]*models.Customer, error) {
	query := `
		SELECT id, environment_id, name, phone, email, document, street, zip_code, credit_limit, tags, business_line, created_at
		FROM sp_list_customers($1, $2)
	`
	rows, err := r.db.Query(ctx, query, environmentID, nullable(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		c := &models.Customer{}
		if err := rows.Scan(&c.ID, &c.EnvironmentID, &c.Name, &c.Phone, &c.Email, &c.Document, &c.Street, &c.ZipCode, &c.CreditLimit, &c.Tags, &c.BusinessLine, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) (*models.ProcedureStatus, error) {
	query := `
		SELECT success, message, new_id, rows_affected
		FROM sp_create_customer($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	return scanStatus(r.db.QueryRow(ctx, query, c.EnvironmentID, c.Name, c.Phone, c.Email, c.Document, c.Street, c.ZipCode, c.CreditLimit, c.Tags, c.BusinessLine))
}

func (r *customerRepo) Update(ctx context.Context, c *models.Customer) (*models.ProcedureStatus, error) {
	query := `
		SELECT success, message, new_id, rows_affected
		FROM sp_update_customer($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	return scanStatus(r.db.QueryRow(ctx, query, c.ID, c.EnvironmentID, c.Name, c.Phone, c.Email, c.Document, c.Street, c.ZipCode, c.CreditLimit, c.Tags, c.BusinessLine))
}

func (r *customerRepo) Delete(ctx context.Context, environmentID, id int64) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_delete_customer($1, $2)`
	return scanStatus(r.db.QueryRow(ctx, query, id, environmentID))
}

package repositories

import (
	"context"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"
)

type EnvironmentRepository interface {
	List(ctx context.Context, filter *string) ([]*models.Environment, error)
	Create(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error)
	Update(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error)
	Delete(ctx context.Context, id int64) (*models.ProcedureStatus, error)
}

type environmentRepo struct {
	db database.DBTX
}

func NewEnvironmentRepo(db database.DBTX) EnvironmentRepository {
	return &environmentRepo{db: db}
}

func (r *environmentRepo) List(ctx context.Context, filter *string) ([]*models.Environment, error) {
	query := `SELECT id, cnpj, trade_name, legal_name FROM sp_list_environments($1)`
	rows, err := r.db.Query(ctx, query, nullable(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	environments := []*models.Environment{}
	for rows.Next() {
		env := &models.Environment{}
		if err := rows.Scan(&env.ID, &env.CNPJ, &env.TradeName, &env.LegalName); err != nil {
			return nil, err
		}
		environments = append(environments, env)
	}
	return environments, rows.Err()
}

func (r *environmentRepo) Create(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_create_environment($1, $2, $3)`
	return scanStatus(r.db.QueryRow(ctx, query, env.CNPJ, env.TradeName, env.LegalName))
}

func (r *environmentRepo) Update(ctx context.Context, env *models.Environment) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_update_environment($1, $2, $3, $4)`
	return scanStatus(r.db.QueryRow(ctx, query, env.ID, env.CNPJ, env.TradeName, env.LegalName))
}

// Delete is rejected by the procedure (success=false) while data is still linked
func (r *environmentRepo) Delete(ctx context.Context, id int64) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_delete_environment($1)`
	return scanStatus(r.db.QueryRow(ctx, query, id))
}

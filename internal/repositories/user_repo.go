package repositories

import (
	"context"
	"errors"

	"flexgestor/internal/models"
	"flexgestor/pkg/database"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	// Login returns nil when the credentials do not match a user of the environment
	Login(ctx context.Context, username, password, cnpj string) (*models.LoginResult, error)
	Signup(ctx context.Context, username, password string) (*models.ProcedureStatus, error)
	List(ctx context.Context, environmentID int64, filter *string) ([]*models.User, error)
	EnvironmentIDs(ctx context.Context, userID int64) ([]int64, error)
	Create(ctx context.Context, user *models.User, password string) (*models.ProcedureStatus, error)
	Update(ctx context.Context, user *models.User, password *string) (*models.ProcedureStatus, error)
	SetCreationEnvironment(ctx context.Context, userID, environmentID int64) error
	AddEnvironment(ctx context.Context, userID, environmentID int64) error
	ClearEnvironments(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) (*models.ProcedureStatus, error)
	WithTx(tx pgx.Tx) UserRepository
}

type userRepo struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx pgx.Tx) UserRepository {
	return &userRepo{db: tx}
}

func (r *userRepo) Login(ctx context.Context, username, password, cnpj string) (*models.LoginResult, error) {
	res := &models.LoginResult{}
	query := `SELECT user_id, username, environment_id, environment_name FROM sp_login_user($1, $2, $3)`
	err := r.db.QueryRow(ctx, query, username, password, cnpj).Scan(&res.UserID, &res.Username, &res.EnvironmentID, &res.EnvironmentName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (r *userRepo) Signup(ctx context.Context, username, password string) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_signup_user($1, $2)`
	return scanStatus(r.db.QueryRow(ctx, query, username, password))
}

func (r *userRepo) List(ctx context.Context, environmentID int64, filter *string) ([]*models.User, error) {
	query := `SELECT id, username, full_name, is_admin, creation_environment_id FROM sp_list_users($1, $2)`
	rows, err := r.db.Query(ctx, query, environmentID, nullable(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.IsAdmin, &u.CreationEnvironmentID); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) EnvironmentIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT environment_id FROM user_environments WHERE user_id = $1 ORDER BY environment_id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepo) Create(ctx context.Context, u *models.User, password string) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_create_user($1, $2, $3, $4, $5)`
	return scanStatus(r.db.QueryRow(ctx, query, u.Username, password, u.FullName, u.IsAdmin, u.CreationEnvironmentID))
}

// Update keeps the stored password when password is nil
func (r *userRepo) Update(ctx context.Context, u *models.User, password *string) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_update_user($1, $2, $3, $4)`
	return scanStatus(r.db.QueryRow(ctx, query, u.ID, u.FullName, u.IsAdmin, nullable(password)))
}

func (r *userRepo) SetCreationEnvironment(ctx context.Context, userID, environmentID int64) error {
	query := `UPDATE users SET creation_environment_id = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, environmentID, userID)
	return err
}

func (r *userRepo) AddEnvironment(ctx context.Context, userID, environmentID int64) error {
	query := `INSERT INTO user_environments (user_id, environment_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, environmentID)
	return err
}

func (r *userRepo) ClearEnvironments(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_environments WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id int64) (*models.ProcedureStatus, error) {
	query := `SELECT success, message, new_id, rows_affected FROM sp_delete_user($1)`
	return scanStatus(r.db.QueryRow(ctx, query, id))
}

package services

import (
	"context"
	"errors"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"
	"flexgestor/pkg/database"

	"github.com/jackc/pgx/v5"
)

const userNotFound = "User not found."

type UserService interface {
	List(ctx context.Context, tc common.TenantContext, filter *string) ([]*models.User, error)
	EnvironmentIDs(ctx context.Context, id int64) ([]int64, error)
	Create(ctx context.Context, input *models.UserInput) (int64, error)
	Update(ctx context.Context, id int64, input *models.UserInput) error
	Delete(ctx context.Context, tc common.TenantContext, id int64) error
}

type userService struct {
	txManager *database.TxManager
	userRepo  repositories.UserRepository
}

func NewUserService(txManager *database.TxManager, userRepo repositories.UserRepository) UserService {
	return &userService{txManager: txManager, userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, tc common.TenantContext, filter *string) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, tc.TenantID, filter)
	if err != nil {
		return nil, common.InternalError("Failed to list users.", err)
	}
	return users, nil
}

func (s *userService) EnvironmentIDs(ctx context.Context, id int64) ([]int64, error) {
	ids, err := s.userRepo.EnvironmentIDs(ctx, id)
	if err != nil {
		return nil, common.InternalError("Failed to fetch user environments.", err)
	}
	return ids, nil
}

// Create writes the user and all of its environment associations atomically
func (s *userService) Create(ctx context.Context, input *models.UserInput) (int64, error) {
	if input.Username == "" || input.Password == nil || *input.Password == "" || input.CreationEnvironmentID == nil {
		return 0, common.ValidationError("Username, password and creation environment are required.")
	}

	user := &models.User{
		Username:              input.Username,
		FullName:              input.FullName,
		IsAdmin:               input.IsAdmin,
		CreationEnvironmentID: input.CreationEnvironmentID,
	}

	var userID int64
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		users := s.userRepo.WithTx(tx)

		status, err := users.Create(ctx, user, *input.Password)
		if err != nil {
			return err
		}
		if err := requireSuccess(status); err != nil {
			return err
		}
		userID = newID(status)

		for _, envID := range input.EnvironmentIDs {
			if err := users.AddEnvironment(ctx, userID, envID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, userTxError("Failed to create user.", err)
	}
	return userID, nil
}

// Update rewrites the user, its creation environment and replaces its
// environment associations. A nil password keeps the current one.
func (s *userService) Update(ctx context.Context, id int64, input *models.UserInput) error {
	if input.CreationEnvironmentID == nil {
		return common.ValidationError("Creation environment is required.")
	}

	user := &models.User{
		ID:                    id,
		FullName:              input.FullName,
		IsAdmin:               input.IsAdmin,
		CreationEnvironmentID: input.CreationEnvironmentID,
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		users := s.userRepo.WithTx(tx)

		status, err := users.Update(ctx, user, input.Password)
		if err != nil {
			return err
		}
		if err := requireAffected(status, userNotFound); err != nil {
			return err
		}

		if err := users.SetCreationEnvironment(ctx, id, *input.CreationEnvironmentID); err != nil {
			return err
		}
		if err := users.ClearEnvironments(ctx, id); err != nil {
			return err
		}
		for _, envID := range input.EnvironmentIDs {
			if err := users.AddEnvironment(ctx, id, envID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return userTxError("Failed to update user.", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, tc common.TenantContext, id int64) error {
	if id == tc.UserID {
		return common.ValidationError("You cannot delete yourself.")
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		users := s.userRepo.WithTx(tx)

		if err := users.ClearEnvironments(ctx, id); err != nil {
			return err
		}
		status, err := users.Delete(ctx, id)
		if err != nil {
			return err
		}
		return requireAffected(status, userNotFound)
	})
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewError(common.KindConflict, "Cannot delete this user because it is linked to other records (e.g. orders).", nil)
		}
		return userTxError("Failed to delete user.", err)
	}
	return nil
}

// userTxError keeps classified failures raised inside the transaction and
// hides everything else behind an internal error
func userTxError(message string, err error) error {
	var rbErr *database.RollbackError
	if errors.As(err, &rbErr) {
		return common.NewError(common.KindRollbackFailed, message, err)
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return common.InternalError(message, err)
}

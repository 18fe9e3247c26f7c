package services

import (
	"flexgestor/internal/common"
	"flexgestor/internal/models"
)

// requireSuccess turns a procedure rejection into a validation error carrying
// the procedure's own message
func requireSuccess(status *models.ProcedureStatus) error {
	if status == nil {
		return common.InternalError("Procedure returned no status.", nil)
	}
	if !status.Success {
		return common.ValidationError(status.Message)
	}
	return nil
}

// requireAffected reports a tenant-filtered write that matched no row as not found.
// A rejection carrying a message is reported like requireSuccess does.
func requireAffected(status *models.ProcedureStatus, notFound string) error {
	if status == nil {
		return common.InternalError("Procedure returned no status.", nil)
	}
	// an explained rejection is a business rule, not a missing row
	if !status.Success && status.Message != "" {
		return common.ValidationError(status.Message)
	}
	if status.Affected() == 0 {
		return common.NotFoundError(notFound)
	}
	return nil
}

func newID(status *models.ProcedureStatus) int64 {
	if status == nil || status.NewID == nil {
		return 0
	}
	return *status.NewID
}

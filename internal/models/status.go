package models

// ProcedureStatus is the single status row returned by write procedures
type ProcedureStatus struct {
	Success      bool   `json:"success" db:"success"`
	Message      string `json:"message" db:"message"`
	NewID        *int64 `json:"newId,omitempty" db:"new_id"`
	RowsAffected *int64 `json:"rowsAffected,omitempty" db:"rows_affected"`
}

// Affected returns the reported row count, zero when the procedure omitted it
func (s *ProcedureStatus) Affected() int64 {
	if s == nil || s.RowsAffected == nil {
		return 0
	}
	return *s.RowsAffected
}

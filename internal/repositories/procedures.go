package repositories

import (
	"errors"

	"flexgestor/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql builds the raw statements of the order core with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const foreignKeyViolation = "23503"

// scanStatus reads the (success, message, new_id, rows_affected) row that every
// write procedure returns.
func scanStatus(row pgx.Row) (*models.ProcedureStatus, error) {
	status := &models.ProcedureStatus{}
	if err := row.Scan(&status.Success, &status.Message, &status.NewID, &status.RowsAffected); err != nil {
		return nil, err
	}
	return status, nil
}

// IsForeignKeyViolation reports whether err is a referential integrity failure
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// nullable maps an empty filter to SQL NULL so procedures skip it
func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID            int64            `json:"id" db:"id"`
	EnvironmentID int64            `json:"environmentId" db:"environment_id"`
	Name          string           `json:"name" db:"name"`
	Phone         *string          `json:"phone" db:"phone"`
	Email         *string          `json:"email" db:"email"`
	Document      *string          `json:"document" db:"document"` // CPF or CNPJ
	Street        *string          `json:"street" db:"street"`
	ZipCode       *string          `json:"zipCode" db:"zip_code"`
	CreditLimit   *decimal.Decimal `json:"creditLimit" db:"credit_limit"`
	Tags          *string          `json:"tags" db:"tags"`
	BusinessLine  *string          `json:"businessLine" db:"business_line"`
	CreatedAt     *time.Time       `json:"createdAt" db:"created_at"`
}

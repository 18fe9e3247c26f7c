package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id" db:"id"`
	EnvironmentID int64           `json:"environmentId" db:"environment_id"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
}

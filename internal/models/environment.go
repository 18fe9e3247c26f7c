package models

// Environment is a tenant ("ambiente"): every customer, product, order and
// user association is partitioned by it.
type Environment struct {
	ID        int64   `json:"id" db:"id"`
	CNPJ      string  `json:"cnpj" db:"cnpj"`
	TradeName string  `json:"tradeName" db:"trade_name"`
	LegalName *string `json:"legalName" db:"legal_name"`
}

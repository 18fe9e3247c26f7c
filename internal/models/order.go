package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentStatus is stored when the client omits a payment status
const DefaultPaymentStatus = "Pendente"

// OrderSearchFilter holds the listing filters accepted by sp_list_orders
type OrderSearchFilter struct {
	Status       *string `json:"status,omitempty"`
	CustomerName *string `json:"customerName,omitempty"`
}

type Order struct {
	ID            int64           `json:"id" db:"id"`
	EnvironmentID int64           `json:"environmentId" db:"environment_id"`
	CustomerID    int64           `json:"customerId" db:"customer_id"`
	CustomerName  *string         `json:"customerName,omitempty" db:"customer_name"`
	Status        string          `json:"status" db:"status"`
	PaymentStatus string          `json:"paymentStatus" db:"payment_status"`
	PaymentMethod *string         `json:"paymentMethod" db:"payment_method"`
	OrderType     *string         `json:"orderType" db:"order_type"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount      decimal.Decimal `json:"discount" db:"discount"`
	Freight       decimal.Decimal `json:"freight" db:"freight"`
	Total         decimal.Decimal `json:"total" db:"total"`
	UserID        *int64          `json:"userId" db:"user_id"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	Items         []*OrderItem    `json:"items,omitempty" db:"-"`
}

// OrderLineInput is one requested line; its price is always resolved server side
type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderInput is the body of order create and update. Client-submitted
// subtotal or total fields are not part of it and are ignored when sent.
type OrderInput struct {
	CustomerID        int64            `json:"customerId"`
	Status            string           `json:"status"`
	Items             []OrderLineInput `json:"items"`
	Discount          LenientDecimal   `json:"discount"`
	Freight           LenientDecimal   `json:"freight"`
	PaymentMethod     *string          `json:"paymentMethod"`
	PaymentStatus     *string          `json:"paymentStatus"`
	OrderType         *string          `json:"orderType"`
	ResponsibleUserID *int64           `json:"responsibleUserId"`
}

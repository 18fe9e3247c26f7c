package services

import (
	"context"
	"fmt"

	"flexgestor/internal/common"
	"flexgestor/internal/models"
	"flexgestor/internal/repositories"

	"github.com/shopspring/decimal"
)

// pricedLine is a requested line with the product price read inside the
// current transaction
type pricedLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l pricedLine) amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// orderTotals holds the server computed money fields of an order
type orderTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Freight  decimal.Decimal
	Total    decimal.Decimal
}

// computeTotals sums the lines and applies discount and freight:
// total = subtotal - discount + freight
func computeTotals(lines []pricedLine, discount, freight decimal.Decimal) orderTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.amount())
	}

	discount = discount.Round(2)
	freight = freight.Round(2)

	return orderTotals{
		Subtotal: subtotal,
		Discount: discount,
		Freight:  freight,
		Total:    subtotal.Sub(discount).Add(freight),
	}
}

// priceLines resolves every line price within the tenant. A product missing
// from the tenant yields a reference error and no lines.
func priceLines(ctx context.Context, products repositories.ProductRepository, environmentID int64, items []models.OrderLineInput) ([]pricedLine, error) {
	lines := make([]pricedLine, 0, len(items))
	for _, item := range items {
		price, found, err := products.PriceOf(ctx, environmentID, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("look up price of product %d: %w", item.ProductID, err)
		}
		if !found {
			return nil, common.NewError(common.KindReference, fmt.Sprintf("product %d not found", item.ProductID), nil)
		}
		lines = append(lines, pricedLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: price})
	}
	return lines, nil
}

func validateOrderInput(input *models.OrderInput) error {
	if input == nil || input.CustomerID == 0 || len(input.Items) == 0 {
		return common.ValidationError("Customer and items are required.")
	}
	for _, item := range input.Items {
		if item.ProductID == 0 {
			return common.ValidationError("Every item requires a productId.")
		}
		if item.Quantity <= 0 {
			return common.ValidationError(fmt.Sprintf("Quantity of product %d must be positive.", item.ProductID))
		}
	}
	return nil
}

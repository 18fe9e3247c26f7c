package services

import (
	"context"
	"errors"
	"testing"

	"flexgestor/internal/common"
	"flexgestor/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []pricedLine
		discount string
		freight  string
		subtotal string
		total    string
	}{
		{
			name:     "single line with discount and freight",
			lines:    []pricedLine{{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}},
			discount: "5",
			freight:  "3",
			subtotal: "20",
			total:    "18",
		},
		{
			name: "cents are exact",
			lines: []pricedLine{
				{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
				{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
			},
			discount: "0",
			freight:  "0",
			subtotal: "0.50",
			total:    "0.50",
		},
		{
			name:     "discount and freight are rounded to cents",
			lines:    []pricedLine{{ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("10")}},
			discount: "0.125",
			freight:  "2.994",
			subtotal: "10",
			total:    "12.86",
		},
		{
			name:     "discount above subtotal is kept",
			lines:    []pricedLine{{ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("5")}},
			discount: "8",
			freight:  "0",
			subtotal: "5",
			total:    "-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := computeTotals(tt.lines, decimal.RequireFromString(tt.discount), decimal.RequireFromString(tt.freight))

			assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString(tt.subtotal)), "subtotal %s", totals.Subtotal)
			assert.True(t, totals.Total.Equal(decimal.RequireFromString(tt.total)), "total %s", totals.Total)
			assert.True(t, totals.Total.Equal(totals.Subtotal.Sub(totals.Discount).Add(totals.Freight)))
		})
	}
}

func TestPriceLines(t *testing.T) {
	ctx := context.Background()

	t.Run("prices every line from the tenant catalog", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("PriceOf", ctx, int64(1), int64(10)).Return(decimal.RequireFromString("2.50"), true, nil)
		repo.On("PriceOf", ctx, int64(1), int64(11)).Return(decimal.RequireFromString("4.00"), true, nil)

		lines, err := priceLines(ctx, repo, 1, []models.OrderLineInput{{ProductID: 10, Quantity: 2}, {ProductID: 11, Quantity: 1}})

		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.True(t, lines[0].amount().Equal(decimal.NewFromInt(5)))
		assert.True(t, lines[1].UnitPrice.Equal(decimal.NewFromInt(4)))
		repo.AssertExpectations(t)
	})

	t.Run("missing product is a reference error", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("PriceOf", ctx, int64(1), int64(10)).Return(decimal.Zero, false, nil)

		lines, err := priceLines(ctx, repo, 1, []models.OrderLineInput{{ProductID: 10, Quantity: 2}, {ProductID: 11, Quantity: 1}})

		assert.Nil(t, lines)
		assert.Equal(t, common.KindReference, common.KindOf(err))
		repo.AssertNotCalled(t, "PriceOf", ctx, int64(1), int64(11))
	})

	t.Run("lookup failure is not a reference error", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("PriceOf", ctx, int64(1), int64(10)).Return(decimal.Zero, false, errors.New("timeout"))

		_, err := priceLines(ctx, repo, 1, []models.OrderLineInput{{ProductID: 10, Quantity: 2}})

		assert.Error(t, err)
		assert.False(t, common.IsKind(err, common.KindReference))
	})
}

func TestValidateOrderInput(t *testing.T) {
	valid := &models.OrderInput{CustomerID: 1, Items: []models.OrderLineInput{{ProductID: 1, Quantity: 1}}}
	assert.NoError(t, validateOrderInput(valid))

	invalid := []*models.OrderInput{
		nil,
		{Items: []models.OrderLineInput{{ProductID: 1, Quantity: 1}}},
		{CustomerID: 1},
		{CustomerID: 1, Items: []models.OrderLineInput{{Quantity: 1}}},
		{CustomerID: 1, Items: []models.OrderLineInput{{ProductID: 1, Quantity: -2}}},
	}
	for _, input := range invalid {
		assert.Equal(t, common.KindValidation, common.KindOf(validateOrderInput(input)))
	}
}

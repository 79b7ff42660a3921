package orderitem

import (
	"fmt"
	"unicode/utf8"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem represents a single line item of an order, priced in USD.
type OrderItem struct {
	ID           int64           `json:"-"`
	OrderID      uuid.UUID       `json:"-"`
	Product      string          `json:"product"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceUSD decimal.Decimal `json:"unitPriceUSD"`
}

// Validate checks the line item field constraints.
func (i *OrderItem) Validate() error {
	if n := utf8.RuneCountInString(i.Product); n < 1 || n > 100 {
		return fmt.Errorf("%w: product must be 1-100 characters", apperrors.ErrValidation)
	}
	if i.Quantity.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}
	// Both fields are stored with scale 2; finer input would be silently
	// rounded by the column and desynchronize items from totals.
	if !i.Quantity.Equal(i.Quantity.Round(2)) {
		return fmt.Errorf("%w: quantity must have at most 2 decimal places", apperrors.ErrValidation)
	}
	if !i.UnitPriceUSD.IsPositive() {
		return fmt.Errorf("%w: unitPriceUSD must be positive", apperrors.ErrValidation)
	}
	if !i.UnitPriceUSD.Equal(i.UnitPriceUSD.Round(2)) {
		return fmt.Errorf("%w: unitPriceUSD must have at most 2 decimal places", apperrors.ErrValidation)
	}

	return nil
}

// Subtotal is quantity times unit price.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPriceUSD)
}

// ValidateItems checks that at least one item is present and every item is valid.
func ValidateItems(items []OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}

	return nil
}

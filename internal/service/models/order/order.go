package order

import (
	"fmt"
	"time"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order with totals in both currencies.
type Order struct {
	ID         uuid.UUID             `json:"id"`
	CustomerID uuid.UUID             `json:"customerId"`
	Date       time.Time             `json:"date"`
	Items      []orderitem.OrderItem `json:"items"`
	TotalUSD   decimal.Decimal       `json:"valueTotalUSD"`
	TotalBRL   decimal.Decimal       `json:"valueTotalBRL"`
	ReceiptURL *string               `json:"comprovanteURL"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// CreateOrderModel carries the fields required to create an order.
type CreateOrderModel struct {
	CustomerID string                `json:"customerId"`
	Date       string                `json:"date"`
	Items      []orderitem.OrderItem `json:"items"`
}

// Validate checks items and the date format. The customer id is validated
// separately so the pipeline can reject malformed ids before any store access.
func (m *CreateOrderModel) Validate() error {
	if _, err := ParseDate(m.Date); err != nil {
		return err
	}

	return orderitem.ValidateItems(m.Items)
}

// UpdateOrderModel is a partial update. Nil fields are left untouched; a
// non-nil Items slice replaces all items and forces a totals recomputation.
type UpdateOrderModel struct {
	CustomerID *string                `json:"customerId,omitempty"`
	Date       *string                `json:"date,omitempty"`
	Items      *[]orderitem.OrderItem `json:"items,omitempty"`
}

// Validate checks the provided fields.
func (m *UpdateOrderModel) Validate() error {
	if m.Date != nil {
		if _, err := ParseDate(*m.Date); err != nil {
			return err
		}
	}
	if m.Items != nil {
		return orderitem.ValidateItems(*m.Items)
	}

	return nil
}

// ParseDate accepts an ISO date, with or without a time component.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be an ISO date", apperrors.ErrValidation)
	}

	return t, nil
}

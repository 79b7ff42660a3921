package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopCustomer is one row of the top-customers ranking: a customer joined with
// the sum of their orders' BRL totals.
type TopCustomer struct {
	CustomerID uuid.UUID       `json:"customerId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Country    string          `json:"country"`
	TotalBRL   decimal.Decimal `json:"totalBRL"`
}

package currency

import (
	"database/sql/driver"
	"errors"
)

type Currency string

const (
	// CurrencyUSD is the currency order items are priced in.
	CurrencyUSD Currency = "USD"
	// CurrencyBRL is the currency order totals are converted into.
	CurrencyBRL Currency = "BRL"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyUSD.String():
		return CurrencyUSD, nil
	case CurrencyBRL.String():
		return CurrencyBRL, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Pair is the conversion pair consumed from the exchange-rate API.
func Pair() string {
	return CurrencyUSD.String() + "-" + CurrencyBRL.String()
}

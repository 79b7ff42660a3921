package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", "2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"with time", "2025-06-01T10:30:00Z", time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), false},
		{"garbage", "01/06/2025", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrValidation)

				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestCreateOrderModel_Validate(t *testing.T) {
	valid := orderitem.OrderItem{
		Product:      "Keyboard",
		Quantity:     decimal.NewFromInt(1),
		UnitPriceUSD: decimal.NewFromInt(50),
	}

	t.Run("valid", func(t *testing.T) {
		m := CreateOrderModel{Date: "2025-06-01", Items: []orderitem.OrderItem{valid}}
		require.NoError(t, m.Validate())
	})

	t.Run("no items", func(t *testing.T) {
		m := CreateOrderModel{Date: "2025-06-01"}
		require.ErrorIs(t, m.Validate(), apperrors.ErrValidation)
	})

	t.Run("bad date", func(t *testing.T) {
		m := CreateOrderModel{Date: "yesterday", Items: []orderitem.OrderItem{valid}}
		require.ErrorIs(t, m.Validate(), apperrors.ErrValidation)
	})
}

func TestOrder_ReceiptWireKey(t *testing.T) {
	url := "http://files.example.com/uploads/1-receipt.pdf"
	o := Order{ReceiptURL: &url}

	body, err := json.Marshal(o)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload, "comprovanteURL")
	assert.NotContains(t, payload, "comprovanteUrl")
}

func TestUpdateOrderModel_Validate(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		m := UpdateOrderModel{}
		require.NoError(t, m.Validate())
	})

	t.Run("empty replacement items rejected", func(t *testing.T) {
		items := []orderitem.OrderItem{}
		m := UpdateOrderModel{Items: &items}
		require.ErrorIs(t, m.Validate(), apperrors.ErrValidation)
	})
}

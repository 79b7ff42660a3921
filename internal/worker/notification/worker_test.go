package notification

import (
	"encoding/json"
	"testing"

	"github.com/corray333/order-management/internal/service/models/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(_ uint64, _ bool) error {
	f.acked = true

	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue

	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, _ bool) error {
	return nil
}

func TestHandle_AcksValidJob(t *testing.T) {
	body, err := json.Marshal(notification.Job{
		OrderID:       uuid.NewString(),
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		TotalBRL:      decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	w := &Worker{}
	w.handle(amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandle_DropsMalformedJob(t *testing.T) {
	ack := &fakeAcknowledger{}
	w := &Worker{}
	w.handle(amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	assert.False(t, ack.acked)
}

package notification

import "github.com/shopspring/decimal"

// QueueName is the RabbitMQ queue the order pipeline publishes to and the
// notifier consumes from.
const QueueName = "notification"

// Job is the payload of one order-confirmation notification.
type Job struct {
	OrderID       string          `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalBRL      decimal.Decimal `json:"totalBRL"`
}

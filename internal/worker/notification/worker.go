package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/corray333/order-management/internal/dal/rabbitmq"
	"github.com/corray333/order-management/internal/service/models/notification"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// Worker consumes order-confirmation jobs and simulates the email send by
// logging. Jobs that cannot be processed are logged and dropped; there is no
// redelivery.
type Worker struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewWorker declares the notification queue and returns a worker bound to it.
func NewWorker(client *rabbitmq.Client) *Worker {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    notification.QueueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return &Worker{
		client: client,
		queue:  queue,
	}
}

// Run starts consuming jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "notifier"
	}

	msgs, err := w.client.Consume(rabbitmq.ConsumeConfig{
		Queue:    w.queue.Name,
		Consumer: consumerTag,
	})
	if err != nil {
		return err
	}

	slog.Info("Notification worker started", "queue", w.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case msg, ok := <-msgs:
				if !ok {
					return fmt.Errorf("notification channel closed")
				}
				w.handle(msg)
			}
		}
	})

	return g.Wait()
}

// handle processes one delivery. Failures never propagate: the job fails
// independently of the request that produced it.
func (w *Worker) handle(msg amqp.Delivery) {
	var job notification.Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		slog.Error("Failed to process notification", "error", err)
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack notification", "error", err)
		}

		return
	}

	slog.Info(fmt.Sprintf(
		"Order %s confirmed for %s <%s> - total BRL %s",
		job.OrderID,
		job.CustomerName,
		job.CustomerEmail,
		job.TotalBRL.StringFixed(2),
	))

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack notification", "error", err)
	}
}

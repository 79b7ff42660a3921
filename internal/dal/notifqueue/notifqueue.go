package notifqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corray333/order-management/internal/dal/rabbitmq"
	"github.com/corray333/order-management/internal/service/models/notification"
	"github.com/streadway/amqp"
)

// Producer publishes notification jobs to RabbitMQ. It is fire-and-forget:
// delivery and processing are the notifier's concern.
type Producer struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// MustNewProducer declares the notification queue and returns a producer bound to it.
func MustNewProducer(client *rabbitmq.Client) *Producer {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    notification.QueueName,
		Durable: true,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to declare notification queue: %v", err))
	}

	return &Producer{
		client: client,
		queue:  queue,
	}
}

// Publish enqueues exactly one notification job.
func (p *Producer) Publish(_ context.Context, job notification.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal notification job: %w", err)
	}

	err = p.client.Channel().Publish(
		"",
		p.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification job: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/corray333/order-management/internal/config"
	"github.com/corray333/order-management/internal/dal/rabbitmq"
	"github.com/corray333/order-management/internal/worker/notification"
)

func main() {
	config.MustInit()

	rabbitClient := rabbitmq.MustNewClient()
	worker := notification.NewWorker(rabbitClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Notification worker error", "error", err)
	}

	if err := rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	slog.Info("Notifier shutdown complete")
}

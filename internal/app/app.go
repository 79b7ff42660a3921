package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/order-management/internal/dal/awesomeapi"
	"github.com/corray333/order-management/internal/dal/notifqueue"
	"github.com/corray333/order-management/internal/dal/postgres"
	"github.com/corray333/order-management/internal/dal/rabbitmq"
	customerrepo "github.com/corray333/order-management/internal/dal/repositories/customer/postgres"
	orderrepo "github.com/corray333/order-management/internal/dal/repositories/order/postgres"
	"github.com/corray333/order-management/internal/dal/storage"
	localstorage "github.com/corray333/order-management/internal/dal/storage/local"
	s3storage "github.com/corray333/order-management/internal/dal/storage/s3"
	"github.com/corray333/order-management/internal/otel"
	"github.com/corray333/order-management/internal/service/services/customersvc"
	"github.com/corray333/order-management/internal/service/services/ordersvc"
	"github.com/corray333/order-management/internal/service/services/reportsvc"
	httptransport "github.com/corray333/order-management/internal/transport/http"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application. This is the composition root: every
// component receives its collaborators here, once, at startup.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("order-api")

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	customerRepo := customerrepo.NewPostgresCustomerRepository(postgresClient.Pool())
	orderRepo := orderrepo.NewPostgresOrderRepository(postgresClient.Pool())

	customerSvc := customersvc.MustNewCustomerService(
		customersvc.WithCustomerRepository(customerRepo),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithCustomerRepository(customerRepo),
		ordersvc.WithRateProvider(awesomeapi.NewClient()),
		ordersvc.WithNotificationPublisher(notifqueue.MustNewProducer(rabbitClient)),
	)

	reportSvc := reportsvc.MustNewReportService(
		reportsvc.WithOrderRepository(orderRepo),
	)

	transport := httptransport.NewHTTPTransport(customerSvc, orderSvc, reportSvc, newStorage())
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// newStorage selects the receipt storage driver from configuration.
func newStorage() storage.Storage {
	if viper.GetString("storage.driver") == "local" {
		return localstorage.NewStorage()
	}

	return s3storage.MustNewStorage()
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

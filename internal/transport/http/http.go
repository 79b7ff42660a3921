package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/dal/storage"
	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/report"
	"github.com/corray333/order-management/internal/transport/http/customers"
	"github.com/corray333/order-management/internal/transport/http/orders"
	"github.com/corray333/order-management/internal/transport/http/reports"
	"github.com/corray333/order-management/pkg/http/middleware/trace"
	"github.com/corray333/order-management/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type customerService interface {
	Create(ctx context.Context, model customer.CreateCustomerModel) (customer.Customer, error)
	List(ctx context.Context) ([]customer.Customer, error)
	Get(ctx context.Context, id string) (customer.Customer, error)
	Update(ctx context.Context, id string, model customer.UpdateCustomerModel) (customer.Customer, error)
	Delete(ctx context.Context, id string) error
}

type orderService interface {
	Create(ctx context.Context, model order.CreateOrderModel) (order.Order, error)
	List(ctx context.Context, page, limit int) (order.ListOrdersResult, error)
	Get(ctx context.Context, id string) (order.Order, error)
	Update(ctx context.Context, id string, model order.UpdateOrderModel) (order.Order, error)
	Delete(ctx context.Context, id string) error
	UpdateReceipt(ctx context.Context, id, url string) (order.Order, error)
}

type reportService interface {
	TopCustomers(ctx context.Context, limit int) ([]report.TopCustomer, error)
}

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	customerSvc customerService
	orderSvc    orderService
	reportSvc   reportService
	storage     storage.Storage
}

func NewHTTPTransport(
	customerSvc customerService,
	orderSvc orderService,
	reportSvc reportService,
	store storage.Storage,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:      server,
		router:      router,
		customerSvc: customerSvc,
		orderSvc:    orderSvc,
		reportSvc:   reportSvc,
		storage:     store,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.createCustomer)
			r.Get("/", h.listCustomers)
			r.Get("/{id}", h.getCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateOrder)
			r.Delete("/{id}", h.deleteOrder)
			r.Post("/{id}/comprovante", h.uploadReceipt)
		})

		r.Get("/reports/top-customers", h.topCustomers)
	})
}

func (h *HTTPTransport) createCustomer(w http.ResponseWriter, r *http.Request) {
	customers.Create(w, r, h.customerSvc)
}

func (h *HTTPTransport) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers.List(w, r, h.customerSvc)
}

func (h *HTTPTransport) getCustomer(w http.ResponseWriter, r *http.Request) {
	customers.Get(w, r, h.customerSvc)
}

func (h *HTTPTransport) updateCustomer(w http.ResponseWriter, r *http.Request) {
	customers.Update(w, r, h.customerSvc)
}

func (h *HTTPTransport) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	customers.Delete(w, r, h.customerSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	orders.Create(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	orders.List(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	orders.Get(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	orders.Update(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orders.Delete(w, r, h.orderSvc)
}

func (h *HTTPTransport) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	orders.UploadReceipt(w, r, h.orderSvc, h.storage)
}

func (h *HTTPTransport) topCustomers(w http.ResponseWriter, r *http.Request) {
	reports.TopCustomers(w, r, h.reportSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}

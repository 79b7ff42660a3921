package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/order-management/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-management/internal/dal/postgres"
	"github.com/corray333/order-management/internal/dal/uow"
	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/notification"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// rateProvider fetches the current USD to BRL conversion rate.
type rateProvider interface {
	GetRate(ctx context.Context) (decimal.Decimal, error)
}

// notificationPublisher enqueues order-confirmation jobs.
type notificationPublisher interface {
	Publish(ctx context.Context, job notification.Job) error
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// OrderService is a service for managing orders. Create runs the full
// pipeline: customer validation, currency-converted totals, persistence and
// notification dispatch.
type OrderService struct {
	pgClient     *postgres.Client
	customerRepo icustomerrepo.ICustomerRepository
	rates        rateProvider
	queue        notificationPublisher

	newUOW func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithCustomerRepository sets the customer repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *OrderService) {
		s.customerRepo = repo
	}
}

// WithRateProvider sets the exchange-rate provider for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRateProvider(rates rateProvider) option {
	return func(s *OrderService) {
		s.rates = rates
	}
}

// WithNotificationPublisher sets the notification queue producer.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotificationPublisher(queue notificationPublisher) option {
	return func(s *OrderService) {
		s.queue = queue
	}
}

// Create runs the order creation pipeline. The rate is fetched fresh per
// call; a rate failure aborts the creation with nothing persisted. A publish
// failure after the commit is returned to the caller even though the order
// now exists.
func (s *OrderService) Create(ctx context.Context, model order.CreateOrderModel) (order.Order, error) {
	customerID, err := parseID(model.CustomerID)
	if err != nil {
		return order.Order{}, err
	}
	if err := model.Validate(); err != nil {
		return order.Order{}, err
	}

	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return order.Order{}, err
	}

	totalUSD, totalBRL, err := s.calculateTotals(ctx, model.Items)
	if err != nil {
		return order.Order{}, err
	}

	date, _ := order.ParseDate(model.Date)
	now := time.Now()

	created, err := s.persistOrder(ctx, order.Order{
		CustomerID: customerID,
		Date:       date,
		Items:      model.Items,
		TotalUSD:   totalUSD,
		TotalBRL:   totalBRL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return order.Order{}, err
	}

	err = s.queue.Publish(ctx, notification.Job{
		OrderID:       created.ID.String(),
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		TotalBRL:      totalBRL,
	})
	if err != nil {
		// The order is already persisted; surfacing the error is deliberate.
		return order.Order{}, fmt.Errorf("order %s created, notification enqueue failed: %w", created.ID, err)
	}

	return created, nil
}

// List returns a page of orders with their items, newest first.
func (s *OrderService) List(ctx context.Context, page, limit int) (order.ListOrdersResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return order.ListOrdersResult{}, err
	}

	if err := s.attachItems(ctx, work, orders); err != nil {
		return order.ListOrdersResult{}, err
	}

	total, err := work.OrderRepository().Count(ctx)
	if err != nil {
		return order.ListOrdersResult{}, err
	}

	return order.ListOrdersResult{
		Data:  orders,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// Get returns an order with its items.
func (s *OrderService) Get(ctx context.Context, id string) (order.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	orders := []order.Order{*o}
	if err := s.attachItems(ctx, work, orders); err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

// Update applies a partial update. A new customer reference must resolve to
// an existing customer; new items force a totals recomputation with a fresh
// rate, same semantics as creation.
func (s *OrderService) Update(
	ctx context.Context,
	id string,
	model order.UpdateOrderModel,
) (order.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return order.Order{}, err
	}
	if err := model.Validate(); err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()

	existing, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	if model.CustomerID != nil {
		customerID, err := parseID(*model.CustomerID)
		if err != nil {
			return order.Order{}, err
		}
		if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
			return order.Order{}, err
		}
		existing.CustomerID = customerID
	}

	if model.Date != nil {
		date, _ := order.ParseDate(*model.Date)
		existing.Date = date
	}

	itemsReplaced := model.Items != nil
	if itemsReplaced {
		existing.Items = *model.Items
		existing.TotalUSD, existing.TotalBRL, err = s.calculateTotals(ctx, existing.Items)
		if err != nil {
			return order.Order{}, err
		}
	}

	existing.UpdatedAt = time.Now()

	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer work.Rollback(ctx) //nolint:errcheck // no-op after commit

	updated, err := work.OrderRepository().Update(ctx, *existing)
	if err != nil {
		return order.Order{}, err
	}

	if itemsReplaced {
		if err := work.OrderItemRepository().DeleteByOrderID(ctx, orderID); err != nil {
			return order.Order{}, err
		}
		for i := range updated.Items {
			updated.Items[i].OrderID = orderID
		}
		updated.Items, err = work.OrderItemRepository().BulkInsert(ctx, updated.Items)
		if err != nil {
			return order.Order{}, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	if !itemsReplaced {
		orders := []order.Order{updated}
		if err := s.attachItems(ctx, s.newUOW(), orders); err != nil {
			return order.Order{}, err
		}
		updated = orders[0]
	}

	return updated, nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	orderID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.newUOW().OrderRepository().Delete(ctx, orderID)
}

// UpdateReceipt stores the receipt URL on an order.
func (s *OrderService) UpdateReceipt(ctx context.Context, id, url string) (order.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()

	o, err := work.OrderRepository().SetReceipt(ctx, orderID, url)
	if err != nil {
		return order.Order{}, err
	}

	orders := []order.Order{*o}
	if err := s.attachItems(ctx, work, orders); err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

// calculateTotals sums the items in USD and converts to BRL with a freshly
// fetched rate, rounded to 2 decimal places.
func (s *OrderService) calculateTotals(
	ctx context.Context,
	items []orderitem.OrderItem,
) (decimal.Decimal, decimal.Decimal, error) {
	totalUSD := decimal.Zero
	for i := range items {
		totalUSD = totalUSD.Add(items[i].Subtotal())
	}

	// Unreachable with valid items, kept as an explicit invariant guard.
	if totalUSD.IsNegative() {
		return decimal.Zero, decimal.Zero, apperrors.ErrInvalidTotal
	}

	rate, err := s.rates.GetRate(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totalUSD, totalUSD.Mul(rate).Round(2), nil
}

// persistOrder writes the order and its items in one transaction.
func (s *OrderService) persistOrder(ctx context.Context, o order.Order) (order.Order, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer work.Rollback(ctx) //nolint:errcheck // no-op after commit

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	for i := range created.Items {
		created.Items[i].OrderID = created.ID
	}
	created.Items, err = work.OrderItemRepository().BulkInsert(ctx, created.Items)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return created, nil
}

// attachItems loads and stitches items onto the given orders.
func (s *OrderService) attachItems(ctx context.Context, work unitOfWork, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	query := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		query.OrderIDs = append(query.OrderIDs, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, query)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = []orderitem.OrderItem{}
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, id)
	}

	return parsed, nil
}

package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/corray333/order-management/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/corray333/order-management/internal/service/models/notification"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/orderitem"
	"github.com/corray333/order-management/internal/service/models/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockCustomerRepo struct {
	byID  map[uuid.UUID]customer.Customer
	calls int
}

func (m *mockCustomerRepo) Insert(_ context.Context, c customer.Customer) (customer.Customer, error) {
	return c, nil
}

func (m *mockCustomerRepo) List(_ context.Context) ([]customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	m.calls++
	c, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("customer: %w", apperrors.ErrNotFound)
	}

	return &c, nil
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, _ string) (*customer.Customer, error) {
	return nil, fmt.Errorf("customer: %w", apperrors.ErrNotFound)
}

func (m *mockCustomerRepo) Update(_ context.Context, c customer.Customer) (customer.Customer, error) {
	return c, nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type mockOrderRepo struct {
	inserted   []order.Order
	updated    []order.Order
	byID       map[uuid.UUID]order.Order
	lastFilter *order.QueryOrdersModel
	queryRes   []order.Order
	total      int64
}

func (m *mockOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	o.ID = uuid.New()
	m.inserted = append(m.inserted, o)

	return o, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("order: %w", apperrors.ErrNotFound)
	}

	return &o, nil
}

func (m *mockOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	m.lastFilter = filter

	return m.queryRes, nil
}

func (m *mockOrderRepo) Count(_ context.Context) (int64, error) {
	return m.total, nil
}

func (m *mockOrderRepo) Update(_ context.Context, o order.Order) (order.Order, error) {
	m.updated = append(m.updated, o)

	return o, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *mockOrderRepo) SetReceipt(_ context.Context, id uuid.UUID, url string) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("order: %w", apperrors.ErrNotFound)
	}
	o.ReceiptURL = &url

	return &o, nil
}

func (m *mockOrderRepo) TopCustomers(_ context.Context, _ int) ([]report.TopCustomer, error) {
	return nil, nil
}

type mockItemRepo struct {
	inserted []orderitem.OrderItem
	deleted  []uuid.UUID
}

func (m *mockItemRepo) BulkInsert(
	_ context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	m.inserted = append(m.inserted, items...)

	return items, nil
}

func (m *mockItemRepo) Query(
	_ context.Context,
	_ *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	return nil, nil
}

func (m *mockItemRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	m.deleted = append(m.deleted, orderID)

	return nil
}

type mockUOW struct {
	orders *mockOrderRepo
	items  *mockItemRepo

	begun     bool
	committed bool
}

func (m *mockUOW) Begin(_ context.Context) error {
	m.begun = true

	return nil
}

func (m *mockUOW) Commit(_ context.Context) error {
	m.committed = true

	return nil
}

func (m *mockUOW) Rollback(_ context.Context) error {
	return nil
}

func (m *mockUOW) OrderRepository() iorderrepo.IOrderRepository {
	return m.orders
}

func (m *mockUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return m.items
}

type mockRates struct {
	rate decimal.Decimal
	err  error
}

func (m *mockRates) GetRate(_ context.Context) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}

	return m.rate, nil
}

type mockQueue struct {
	jobs []notification.Job
	err  error
}

func (m *mockQueue) Publish(_ context.Context, job notification.Job) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)

	return nil
}

// --- Helpers ---

func newTestService(
	customers *mockCustomerRepo,
	work *mockUOW,
	rates *mockRates,
	queue *mockQueue,
) *OrderService {
	s := MustNewOrderService(
		WithCustomerRepository(customers),
		WithRateProvider(rates),
		WithNotificationPublisher(queue),
	)
	s.newUOW = func() unitOfWork { return work }

	return s
}

func newItem(product string, quantity, price int64) orderitem.OrderItem {
	return orderitem.OrderItem{
		Product:      product,
		Quantity:     decimal.NewFromInt(quantity),
		UnitPriceUSD: decimal.NewFromInt(price),
	}
}

func anaCustomer() (uuid.UUID, *mockCustomerRepo) {
	id := uuid.New()

	return id, &mockCustomerRepo{byID: map[uuid.UUID]customer.Customer{
		id: {ID: id, Name: "Ana", Email: "ana@x.com", Country: "BR"},
	}}
}

// --- Tests ---

func TestCreate_MalformedCustomerID(t *testing.T) {
	customers := &mockCustomerRepo{}
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(5)}, &mockQueue{})

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: "not-a-uuid",
		Date:       "2025-06-01",
		Items:      []orderitem.OrderItem{newItem("A", 1, 10)},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidID)

	// Rejected before any store access.
	assert.Zero(t, customers.calls)
	assert.False(t, work.begun)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	customers := &mockCustomerRepo{}
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(5)}, &mockQueue{})

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: uuid.NewString(),
		Date:       "2025-06-01",
		Items:      []orderitem.OrderItem{newItem("A", 1, 10)},
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, work.begun)
}

func TestCreate_NoItems(t *testing.T) {
	custID, customers := anaCustomer()
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(5)}, &mockQueue{})

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreate_RateUnavailable(t *testing.T) {
	custID, customers := anaCustomer()
	orderRepo := &mockOrderRepo{}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	rates := &mockRates{err: fmt.Errorf("%w: invalid bid", apperrors.ErrRateUnavailable)}
	svc := newTestService(customers, work, rates, &mockQueue{})

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
		Items:      []orderitem.OrderItem{newItem("A", 2, 10)},
	})
	require.ErrorIs(t, err, apperrors.ErrRateUnavailable)

	// Creation aborted, nothing persisted.
	assert.Empty(t, orderRepo.inserted)
	assert.False(t, work.begun)
}

func TestCreate_ComputesTotalsAndNotifies(t *testing.T) {
	custID, customers := anaCustomer()
	orderRepo := &mockOrderRepo{}
	itemRepo := &mockItemRepo{}
	work := &mockUOW{orders: orderRepo, items: itemRepo}
	queue := &mockQueue{}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(5)}, queue)

	created, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
		Items: []orderitem.OrderItem{
			newItem("A", 2, 10),
			newItem("B", 1, 10),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "30", created.TotalUSD.String())
	assert.Equal(t, "150.00", created.TotalBRL.StringFixed(2))
	assert.True(t, work.committed)
	require.Len(t, itemRepo.inserted, 2)

	require.Len(t, queue.jobs, 1)
	job := queue.jobs[0]
	assert.Equal(t, created.ID.String(), job.OrderID)
	assert.Equal(t, "Ana", job.CustomerName)
	assert.Equal(t, "ana@x.com", job.CustomerEmail)
	assert.True(t, job.TotalBRL.Equal(created.TotalBRL))
}

func TestCreate_FractionalQuantityKeepsTotalExact(t *testing.T) {
	custID, customers := anaCustomer()
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(2)}, &mockQueue{})

	created, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
		Items: []orderitem.OrderItem{{
			Product:      "Cable",
			Quantity:     decimal.NewFromFloat(1.5),
			UnitPriceUSD: decimal.NewFromFloat(0.99),
		}},
	})
	require.NoError(t, err)

	// 1.5 * 0.99 stays 1.485; only the BRL total is rounded.
	assert.Equal(t, "1.485", created.TotalUSD.String())
	assert.Equal(t, "2.97", created.TotalBRL.StringFixed(2))
}

func TestCreate_RoundsTargetTotal(t *testing.T) {
	custID, customers := anaCustomer()
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	rate, err := decimal.NewFromString("5.4321")
	require.NoError(t, err)
	svc := newTestService(customers, work, &mockRates{rate: rate}, &mockQueue{})

	created, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
		Items:      []orderitem.OrderItem{newItem("A", 3, 7)},
	})
	require.NoError(t, err)

	// 21 * 5.4321 = 114.0741, rounded to 2 places.
	assert.Equal(t, "114.07", created.TotalBRL.StringFixed(2))
}

func TestCreate_EnqueueFailureAfterPersist(t *testing.T) {
	custID, customers := anaCustomer()
	orderRepo := &mockOrderRepo{}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	queue := &mockQueue{err: errors.New("broker gone")}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(5)}, queue)

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		CustomerID: custID.String(),
		Date:       "2025-06-01",
		Items:      []orderitem.OrderItem{newItem("A", 1, 10)},
	})
	require.Error(t, err)

	// The failure surfaces even though the order is already persisted.
	assert.Len(t, orderRepo.inserted, 1)
	assert.True(t, work.committed)
}

func TestList_Pagination(t *testing.T) {
	orderRepo := &mockOrderRepo{total: 15}
	for i := 0; i < 5; i++ {
		orderRepo.queryRes = append(orderRepo.queryRes, order.Order{ID: uuid.New()})
	}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	svc := newTestService(&mockCustomerRepo{}, work, &mockRates{}, &mockQueue{})

	result, err := svc.List(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, orderRepo.lastFilter.Limit)
	assert.Equal(t, 10, orderRepo.lastFilter.Offset)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, int64(15), result.Total)
	assert.Len(t, result.Data, 5)
}

func TestList_Defaults(t *testing.T) {
	orderRepo := &mockOrderRepo{}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	svc := newTestService(&mockCustomerRepo{}, work, &mockRates{}, &mockQueue{})

	result, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 10, orderRepo.lastFilter.Limit)
	assert.Equal(t, 0, orderRepo.lastFilter.Offset)
}

func TestUpdate_NewItemsRecomputeTotals(t *testing.T) {
	custID, customers := anaCustomer()
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{byID: map[uuid.UUID]order.Order{
		orderID: {
			ID:         orderID,
			CustomerID: custID,
			TotalUSD:   decimal.NewFromInt(30),
			TotalBRL:   decimal.NewFromInt(150),
		},
	}}
	itemRepo := &mockItemRepo{}
	work := &mockUOW{orders: orderRepo, items: itemRepo}
	svc := newTestService(customers, work, &mockRates{rate: decimal.NewFromInt(2)}, &mockQueue{})

	items := []orderitem.OrderItem{newItem("C", 4, 5)}
	updated, err := svc.Update(context.Background(), orderID.String(), order.UpdateOrderModel{
		Items: &items,
	})
	require.NoError(t, err)

	assert.Equal(t, "20", updated.TotalUSD.String())
	assert.Equal(t, "40.00", updated.TotalBRL.StringFixed(2))
	assert.Equal(t, []uuid.UUID{orderID}, itemRepo.deleted)
	require.Len(t, itemRepo.inserted, 1)
	assert.Equal(t, orderID, itemRepo.inserted[0].OrderID)
	assert.True(t, work.committed)
}

func TestUpdate_UnknownCustomerReference(t *testing.T) {
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{byID: map[uuid.UUID]order.Order{
		orderID: {ID: orderID},
	}}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	svc := newTestService(&mockCustomerRepo{}, work, &mockRates{}, &mockQueue{})

	other := uuid.NewString()
	_, err := svc.Update(context.Background(), orderID.String(), order.UpdateOrderModel{
		CustomerID: &other,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, orderRepo.updated)
}

func TestUpdateReceipt_NotFound(t *testing.T) {
	work := &mockUOW{orders: &mockOrderRepo{}, items: &mockItemRepo{}}
	svc := newTestService(&mockCustomerRepo{}, work, &mockRates{}, &mockQueue{})

	_, err := svc.UpdateReceipt(context.Background(), uuid.NewString(), "http://x/r.pdf")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateReceipt_SetsURL(t *testing.T) {
	orderID := uuid.New()
	orderRepo := &mockOrderRepo{byID: map[uuid.UUID]order.Order{
		orderID: {ID: orderID},
	}}
	work := &mockUOW{orders: orderRepo, items: &mockItemRepo{}}
	svc := newTestService(&mockCustomerRepo{}, work, &mockRates{}, &mockQueue{})

	updated, err := svc.UpdateReceipt(context.Background(), orderID.String(), "http://x/r.pdf")
	require.NoError(t, err)
	require.NotNil(t, updated.ReceiptURL)
	assert.Equal(t, "http://x/r.pdf", *updated.ReceiptURL)
}

package iorderrepo

import (
	"context"

	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/report"
	"github.com/google/uuid"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, o order.Order) (order.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetReceipt(ctx context.Context, id uuid.UUID, url string) (*order.Order, error)
	TopCustomers(ctx context.Context, limit int) ([]report.TopCustomer, error)
}

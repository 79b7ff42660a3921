package icustomerrepo

import (
	"context"

	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/google/uuid"
)

// ICustomerRepository is an interface for the customer postgres repository.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
	List(ctx context.Context) ([]customer.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
	Update(ctx context.Context, c customer.Customer) (customer.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

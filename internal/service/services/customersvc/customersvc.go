package customersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corray333/order-management/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/google/uuid"
)

// CustomerService is a service for managing customers.
type CustomerService struct {
	customerRepo icustomerrepo.ICustomerRepository
}

// option is a function that configures the CustomerService.
type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCustomerRepository sets the customer repository for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *CustomerService) {
		s.customerRepo = repo
	}
}

// Create validates the payload and creates a customer. Emails are matched
// byte-for-byte, no normalization.
func (s *CustomerService) Create(
	ctx context.Context,
	model customer.CreateCustomerModel,
) (customer.Customer, error) {
	if err := model.Validate(); err != nil {
		return customer.Customer{}, err
	}

	existing, err := s.customerRepo.GetByEmail(ctx, model.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return customer.Customer{}, err
	}
	if existing != nil {
		return customer.Customer{}, fmt.Errorf("create customer: %w", apperrors.ErrEmailTaken)
	}

	now := time.Now()

	return s.customerRepo.Insert(ctx, customer.Customer{
		Name:      model.Name,
		Email:     model.Email,
		Country:   model.Country,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// List returns all customers, newest first.
func (s *CustomerService) List(ctx context.Context) ([]customer.Customer, error) {
	return s.customerRepo.List(ctx)
}

// Get returns a customer by id.
func (s *CustomerService) Get(ctx context.Context, id string) (customer.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customer.Customer{}, err
	}

	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return customer.Customer{}, err
	}

	return *c, nil
}

// Update applies a partial update to a customer.
func (s *CustomerService) Update(
	ctx context.Context,
	id string,
	model customer.UpdateCustomerModel,
) (customer.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customer.Customer{}, err
	}
	if err := model.Validate(); err != nil {
		return customer.Customer{}, err
	}

	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return customer.Customer{}, err
	}

	model.ApplyTo(c)
	c.UpdatedAt = time.Now()

	return s.customerRepo.Update(ctx, *c)
}

// Delete removes a customer. Existing orders keep their reference; the
// reporting join drops them once the customer is gone.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	customerID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.customerRepo.Delete(ctx, customerID)
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, id)
	}

	return parsed, nil
}

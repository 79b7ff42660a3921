package customer

import (
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/google/uuid"
)

// Customer represents a customer record.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCustomerModel carries the fields required to create a customer.
type CreateCustomerModel struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country"`
}

// Validate checks the create payload field constraints.
func (m *CreateCustomerModel) Validate() error {
	if err := validateName(m.Name); err != nil {
		return err
	}
	if err := validateEmail(m.Email); err != nil {
		return err
	}

	return validateCountry(m.Country)
}

// UpdateCustomerModel is a partial update. Nil fields are left untouched.
type UpdateCustomerModel struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Country *string `json:"country,omitempty"`
}

// Validate checks the provided fields against the same constraints as create.
func (m *UpdateCustomerModel) Validate() error {
	if m.Name != nil {
		if err := validateName(*m.Name); err != nil {
			return err
		}
	}
	if m.Email != nil {
		if err := validateEmail(*m.Email); err != nil {
			return err
		}
	}
	if m.Country != nil {
		if err := validateCountry(*m.Country); err != nil {
			return err
		}
	}

	return nil
}

// ApplyTo merges the provided fields into an existing customer.
func (m *UpdateCustomerModel) ApplyTo(c *Customer) {
	if m.Name != nil {
		c.Name = *m.Name
	}
	if m.Email != nil {
		c.Email = *m.Email
	}
	if m.Country != nil {
		c.Country = *m.Country
	}
}

func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n < 2 || n > 80 {
		return fmt.Errorf("%w: name must be 2-80 characters", apperrors.ErrValidation)
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}

	return nil
}

func validateCountry(country string) error {
	if n := utf8.RuneCountInString(country); n < 1 || n > 60 {
		return fmt.Errorf("%w: country must be 1-60 characters", apperrors.ErrValidation)
	}

	return nil
}

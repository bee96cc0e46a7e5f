package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Customer is a party the shop keeps an account for. Balances are never
// stored on the customer; they are always derived from movements.
type Customer struct {
	ID            uuid.UUID
	Name          string
	Phone         string
	AccountNumber string // unique, human-facing
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CustomerBuilder provides a fluent API for constructing Customer instances.
type CustomerBuilder struct {
	id            uuid.UUID
	name          string
	phone         string
	accountNumber string
	createdAt     time.Time
}

// NewCustomer creates a builder with a fresh ID and creation time.
func NewCustomer() *CustomerBuilder {
	return &CustomerBuilder{id: uuid.New(), createdAt: time.Now().UTC()}
}

// WithID sets the customer ID, used when hydrating from the store.
func (b *CustomerBuilder) WithID(id uuid.UUID) *CustomerBuilder {
	b.id = id
	return b
}

// WithName sets the customer's display name. Mandatory.
func (b *CustomerBuilder) WithName(name string) *CustomerBuilder {
	b.name = name
	return b
}

// WithPhone sets the customer's phone number.
func (b *CustomerBuilder) WithPhone(phone string) *CustomerBuilder {
	b.phone = phone
	return b
}

// WithAccountNumber sets the unique human-facing account number.
func (b *CustomerBuilder) WithAccountNumber(n string) *CustomerBuilder {
	b.accountNumber = n
	return b
}

// Build validates and returns the Customer.
func (b *CustomerBuilder) Build() (*Customer, error) {
	if b.name == "" {
		return nil, errors.New("customer name is required")
	}
	if b.accountNumber == "" {
		return nil, errors.New("account number is required")
	}
	return &Customer{
		ID:            b.id,
		Name:          b.name,
		Phone:         b.phone,
		AccountNumber: b.accountNumber,
		CreatedAt:     b.createdAt,
	}, nil
}

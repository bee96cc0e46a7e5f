package repository

import (
	"context"
	"time"

	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/google/uuid"
)

// CustomerRepository provides access to customer rows.
type CustomerRepository interface {
	Create(ctx context.Context, c *ledger.Customer) error
	Get(ctx context.Context, id uuid.UUID) (*ledger.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Customer, error)
	List(ctx context.Context) ([]*ledger.Customer, error)
	Update(ctx context.Context, c *ledger.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementFilter narrows movement queries. Zero-value fields are ignored.
type MovementFilter struct {
	CustomerID        *uuid.UUID
	Currency          currency.Code
	From              *time.Time
	To                *time.Time
	ExcludeSatellites bool
}

// MovementPatch carries an operator correction. Nil fields are untouched.
// Amount carries its currency, so a currency correction is an Amount patch.
type MovementPatch struct {
	Amount          *money.Money
	ReceiptNumber   *string
	SenderName      *string
	BeneficiaryName *string
	Notes           *string
}

// MovementRepository is the ledger store: append-mostly movement rows, the
// source of truth for every derived balance.
type MovementRepository interface {
	// Create inserts a single movement row.
	Create(ctx context.Context, m *ledger.Movement) error

	// CreateBatch inserts all rows or none. Callers needing cross-row
	// atomicity must run it inside a UnitOfWork transaction.
	CreateBatch(ctx context.Context, ms []*ledger.Movement) error

	Get(ctx context.Context, id uuid.UUID) (*ledger.Movement, error)

	// List returns movements matching the filter ordered by created_at
	// ascending; created_at is the sole ordering key for running balances.
	List(ctx context.Context, f MovementFilter) ([]*ledger.Movement, error)

	// ListSatellites returns the commission satellites linked to a parent.
	ListSatellites(ctx context.Context, parentID uuid.UUID) ([]*ledger.Movement, error)

	Update(ctx context.Context, id uuid.UUID, patch MovementPatch) error

	// Delete removes the row permanently. There is no soft delete; derived
	// balances change immediately.
	Delete(ctx context.Context, id uuid.UUID) error
}

// IdempotencyRepository reserves client-generated request keys so a
// re-submitted transfer is rejected instead of applied twice.
type IdempotencyRepository interface {
	// Reserve records the key. It returns ledger.ErrDuplicateRequest when
	// the key was already reserved within the window.
	Reserve(ctx context.Context, key string, window time.Duration) error
}

// UnitOfWork defines the contract for transactional work and repository
// access bound to one transaction.
//
// Repository accessors are part of UnitOfWork so every repository obtained
// inside Do shares the same DB session; a transfer's movements are inserted
// all-or-nothing through it.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back and nothing is observable.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	CustomerRepository() (CustomerRepository, error)
	MovementRepository() (MovementRepository, error)
	IdempotencyRepository() (IdempotencyRepository, error)
}

package repository

import (
	"context"

	"github.com/albahri/sarraf/infra/repository/customer"
	"github.com/albahri/sarraf/infra/repository/idempotency"
	"github.com/albahri/sarraf/infra/repository/movement"
	"github.com/albahri/sarraf/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// Repository accessors are part of UoW so that all repositories obtained
// inside Do share the same DB session. This is what makes a transfer's
// multi-row insert atomic: either every movement row commits or none does.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// whose repositories are bound to that transaction. An error from fn rolls
// the whole transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection
// otherwise (plain reads don't need a transaction).
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// CustomerRepository returns a customer repository bound to the current session.
func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return customer.New(u.session()), nil
}

// MovementRepository returns a movement repository bound to the current session.
func (u *UoW) MovementRepository() (repository.MovementRepository, error) {
	return movement.New(u.session()), nil
}

// IdempotencyRepository returns an idempotency-key repository bound to the current session.
func (u *UoW) IdempotencyRepository() (repository.IdempotencyRepository, error) {
	return idempotency.New(u.session()), nil
}

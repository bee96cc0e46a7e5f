// Package customer implements the thin CRUD service for customer records.
// Everything with real invariants lives in the movement, transfer and
// statement services; this is form plumbing.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
)

// Service manages customer records.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a customer service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateRequest is a new-customer form submission.
type CreateRequest struct {
	Name          string
	Phone         string
	AccountNumber string
}

// Create registers a customer. When no account number is given one is
// derived from the registration time.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ledger.Customer, error) {
	accountNumber := req.AccountNumber
	if accountNumber == "" {
		accountNumber = fmt.Sprintf("ACC-%d", time.Now().UnixMilli())
	}
	c, err := ledger.NewCustomer().
		WithName(req.Name).
		WithPhone(req.Phone).
		WithAccountNumber(accountNumber).
		Build()
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		s.logger.Error("create customer failed", "error", err)
		return nil, err
	}
	s.logger.Info("customer created", "customerID", c.ID, "accountNumber", c.AccountNumber)
	return c, nil
}

// Get returns one customer.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Customer, error) {
	var out *ledger.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		out, err = repo.Get(ctx, id)
		return err
	})
	return out, err
}

// List returns all customers ordered by name.
func (s *Service) List(ctx context.Context) ([]*ledger.Customer, error) {
	var out []*ledger.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		out, err = repo.List(ctx)
		return err
	})
	return out, err
}

// UpdateRequest carries editable customer fields. Empty fields are kept.
type UpdateRequest struct {
	Name          string
	Phone         string
	AccountNumber string
}

// Update edits a customer record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*ledger.Customer, error) {
	var out *ledger.Customer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Phone != "" {
			existing.Phone = req.Phone
		}
		if req.AccountNumber != "" {
			existing.AccountNumber = req.AccountNumber
		}
		if err := repo.Update(ctx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	return out, err
}

// Delete removes a customer record. Their movements are not touched; the
// operator is expected to settle the account first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

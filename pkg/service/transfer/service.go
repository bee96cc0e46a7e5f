// Package transfer implements the transfer coordinator: internal transfers
// between two customers, or between the shop and a customer, executed as a
// single atomic write. A transfer changes two parties' balances at once and
// must never be observed half-applied.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/albahri/sarraf/pkg/repository"
	"github.com/albahri/sarraf/pkg/service/sequence"
	"github.com/google/uuid"
)

// Service is the transfer coordinator.
type Service struct {
	uow               repository.UnitOfWork
	numbers           sequence.NumberGenerator
	idempotencyWindow time.Duration
	logger            *slog.Logger
}

// NewService creates a transfer coordinator. idempotencyWindow is how long
// a client idempotency key stays reserved.
func NewService(uow repository.UnitOfWork, numbers sequence.NumberGenerator, idempotencyWindow time.Duration, logger *slog.Logger) *Service {
	return &Service{uow: uow, numbers: numbers, idempotencyWindow: idempotencyWindow, logger: logger}
}

// Request describes an internal transfer. A nil customer ID on either side
// means that side is the shop; the shop never gets movement rows of its own.
type Request struct {
	FromCustomerID *uuid.UUID
	ToCustomerID   *uuid.UUID
	Amount         float64
	Currency       currency.Code
	Commission     float64

	// CommissionRecipient routes a customer-to-customer commission: the
	// receiving customer (ledger.CommissionRecipientTo) or, when empty, the
	// shop's P&L account.
	CommissionRecipient string

	SenderName      string
	BeneficiaryName string
	Notes           string

	// IdempotencyKey is a client-generated key; re-submitting a request
	// with the same key inside the dedup window is rejected.
	IdempotencyKey string
}

// Result is the committed outcome of a transfer. Movement IDs are returned
// for receipt printing.
type Result struct {
	TransferNumber string
	Direction      ledger.TransferDirection
	Movements      []*ledger.Movement
}

// MovementIDs returns the IDs of the persisted movements.
func (r *Result) MovementIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Movements))
	for _, m := range r.Movements {
		ids = append(ids, m.ID)
	}
	return ids
}

// Execute runs the transfer state machine: validate, resolve commission
// routing, compute per-side amounts, persist atomically. On any error the
// transfer is rejected with no side effects.
func (s *Service) Execute(ctx context.Context, req Request) (result *Result, err error) {
	logger := s.logger.With(
		"from", req.FromCustomerID,
		"to", req.ToCustomerID,
		"amount", req.Amount,
		"currency", req.Currency,
		"commission", req.Commission,
	)
	defer func() {
		if err != nil {
			logger.Error("transfer rejected", "error", err)
		} else {
			logger.Info("transfer committed", "transferNumber", result.TransferNumber)
		}
	}()

	direction, err := resolveDirection(req)
	if err != nil {
		return nil, err
	}
	movements, err := s.buildMovements(req, direction)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if req.IdempotencyKey != "" {
			idem, err := uow.IdempotencyRepository()
			if err != nil {
				return err
			}
			if err := idem.Reserve(ctx, req.IdempotencyKey, s.idempotencyWindow); err != nil {
				return err
			}
		}

		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		for _, m := range movements {
			if _, err := customers.Get(ctx, m.CustomerID); err != nil {
				return err
			}
		}

		repo, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		return repo.CreateBatch(ctx, movements)
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		TransferNumber: movements[0].TransferNumber,
		Direction:      direction,
		Movements:      movements,
	}, nil
}

// resolveDirection derives the transfer protocol from which parties are
// customers. Shop-to-shop and same-customer transfers are rejected here,
// before anything touches the store.
func resolveDirection(req Request) (ledger.TransferDirection, error) {
	switch {
	case req.FromCustomerID == nil && req.ToCustomerID == nil:
		return "", ledger.ErrShopToShopTransfer
	case req.FromCustomerID != nil && req.ToCustomerID != nil:
		if *req.FromCustomerID == *req.ToCustomerID {
			return "", ledger.ErrSameCustomerTransfer
		}
		return ledger.TransferCustomerToCustomer, nil
	case req.FromCustomerID == nil:
		return ledger.TransferShopToCustomer, nil
	default:
		return ledger.TransferCustomerToShop, nil
	}
}

// buildMovements computes the per-side amounts and constructs the movement
// rows. Commission routing on customer-to-customer transfers is deliberately
// asymmetric: when the receiving customer is the recipient they get
// amount + commission; when the P&L account absorbs it they get
// amount - commission.
func (s *Service) buildMovements(req Request, direction ledger.TransferDirection) ([]*ledger.Movement, error) {
	if req.Currency == "" {
		return nil, ledger.ErrMissingRequiredField
	}
	amount, err := money.New(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	commission, err := money.New(req.Commission, req.Currency)
	if err != nil {
		return nil, err
	}
	if commission.IsNegative() {
		return nil, ledger.ErrInvalidCommission
	}
	if req.CommissionRecipient == ledger.CommissionRecipientTo && direction != ledger.TransferCustomerToCustomer {
		return nil, ledger.ErrMissingTransferParty
	}

	now := time.Now().UTC()
	transferNumber := sequence.NextOrFallback(s.numbers, sequence.TransferPrefix)

	newMovement := func(customerID uuid.UUID, t ledger.MovementType, amt money.Money) *ledger.Movement {
		m := &ledger.Movement{
			ID:                 uuid.New(),
			MovementNumber:     sequence.NextOrFallback(s.numbers, sequence.MovementPrefix),
			CustomerID:         customerID,
			Type:               t,
			Amount:             amt,
			IsInternalTransfer: true,
			TransferDirection:  direction,
			SenderName:         req.SenderName,
			BeneficiaryName:    req.BeneficiaryName,
			TransferNumber:     transferNumber,
			Notes:              req.Notes,
			CreatedAt:          now,
		}
		if commission.IsPositive() {
			c := commission
			m.Commission = &c
		}
		return m
	}

	switch direction {
	case ledger.TransferCustomerToCustomer:
		toAmount := amount
		if commission.IsPositive() {
			if req.CommissionRecipient == ledger.CommissionRecipientTo {
				toAmount, err = amount.Add(commission)
			} else {
				toAmount, err = amount.Subtract(commission)
			}
			if err != nil {
				return nil, err
			}
			if !toAmount.IsPositive() {
				return nil, ledger.ErrCommissionExceedsAmount
			}
		}
		from := newMovement(*req.FromCustomerID, ledger.MovementOutgoing, amount)
		to := newMovement(*req.ToCustomerID, ledger.MovementIncoming, toAmount)
		if req.CommissionRecipient == ledger.CommissionRecipientTo {
			recipient := *req.ToCustomerID
			to.CommissionRecipientID = &recipient
		}
		return []*ledger.Movement{from, to}, nil

	case ledger.TransferShopToCustomer:
		// The shop side is implicit; its position is the complement of all
		// customer balances.
		return []*ledger.Movement{newMovement(*req.ToCustomerID, ledger.MovementIncoming, amount)}, nil

	case ledger.TransferCustomerToShop:
		return []*ledger.Movement{newMovement(*req.FromCustomerID, ledger.MovementOutgoing, amount)}, nil
	}
	return nil, ledger.ErrMissingRequiredField
}

// Package movement implements the movement engine: the single authority for
// turning a user-entered request into one or more validated movements. All
// entry points (quick-add, new-movement screen, transfers) go through it, so
// the commission-netting rule lives in exactly one place.
package movement

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

// Service is the movement engine.
type Service struct {
	uow     repository.UnitOfWork
	numbers sequence.NumberGenerator
	logger  *slog.Logger
}

// NewService creates a movement engine.
func NewService(uow repository.UnitOfWork, numbers sequence.NumberGenerator, logger *slog.Logger) *Service {
	return &Service{uow: uow, numbers: numbers, logger: logger}
}

// RecordRequest is a user-entered movement.
type RecordRequest struct {
	CustomerID            uuid.UUID
	Type                  ledger.MovementType
	Amount                float64
	Currency              currency.Code
	Commission            *float64
	CommissionCurrency    currency.Code
	CommissionRecipientID *uuid.UUID
	ReceiptNumber         string
	SenderName            string
	BeneficiaryName       string
	Notes                 string
}

// Record validates the request, applies the commission-netting rule and
// persists the movement (plus its commission satellite, when a recipient is
// designated) atomically.
//
// Netting applies only when the movement is incoming and the commission is
// in the movement currency: the persisted amount is amount - commission.
// Outgoing movements are never netted; statement math downstream assumes
// this asymmetry.
func (s *Service) Record(ctx context.Context, req RecordRequest) (result *ledger.Movement, err error) {
	logger := s.logger.With(
		"customerID", req.CustomerID,
		"type", req.Type,
		"amount", req.Amount,
		"currency", req.Currency,
	)
	defer func() {
		if err != nil {
			logger.Error("record movement failed", "error", err)
		} else {
			logger.Info("movement recorded", "movementNumber", result.MovementNumber)
		}
	}()

	parent, satellite, err := s.build(req)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		movements, err := uow.MovementRepository()
		if err != nil {
			return err
		}

		if _, err := customers.Get(ctx, parent.CustomerID); err != nil {
			return err
		}
		rows := []*ledger.Movement{parent}
		if satellite != nil {
			if _, err := customers.Get(ctx, *satellite.CommissionRecipientID); err != nil {
				return err
			}
			rows = append(rows, satellite)
		}
		return movements.CreateBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}
	return parent, nil
}

// build constructs the parent movement and, when a commission recipient is
// designated, its satellite. No persistence happens here.
func (s *Service) build(req RecordRequest) (*ledger.Movement, *ledger.Movement, error) {
	if req.CustomerID == uuid.Nil || !req.Type.IsValid() || req.Currency == "" {
		return nil, nil, ledger.ErrMissingRequiredField
	}

	amount, err := money.New(req.Amount, req.Currency)
	if err != nil {
		return nil, nil, err
	}
	if !amount.IsPositive() {
		return nil, nil, ledger.ErrInvalidAmount
	}

	var commission *money.Money
	if req.Commission != nil {
		commissionCurrency := req.CommissionCurrency
		if commissionCurrency == "" {
			commissionCurrency = req.Currency
		}
		c, err := money.New(*req.Commission, commissionCurrency)
		if err != nil {
			return nil, nil, err
		}
		if c.IsNegative() {
			return nil, nil, ledger.ErrInvalidCommission
		}
		commission = &c
	}

	// Same-currency commission on an incoming movement is netted out of the
	// persisted amount. A cross-currency commission is a separate cash flow
	// and never reduces the amount.
	if commission != nil && commission.IsPositive() &&
		req.Type == ledger.MovementIncoming && amount.IsSameCurrency(*commission) {
		net, err := amount.Subtract(*commission)
		if err != nil {
			return nil, nil, err
		}
		if !net.IsPositive() {
			return nil, nil, ledger.ErrCommissionExceedsAmount
		}
		amount = net
	}

	now := time.Now().UTC()
	parent := &ledger.Movement{
		ID:                    uuid.New(),
		MovementNumber:        sequence.NextOrFallback(s.numbers, sequence.MovementPrefix),
		ReceiptNumber:         req.ReceiptNumber,
		CustomerID:            req.CustomerID,
		Type:                  req.Type,
		Amount:                amount,
		Commission:            commission,
		CommissionRecipientID: req.CommissionRecipientID,
		SenderName:            req.SenderName,
		BeneficiaryName:       req.BeneficiaryName,
		Notes:                 req.Notes,
		CreatedAt:             now,
	}
	if err := parent.Validate(); err != nil {
		return nil, nil, err
	}

	// Without a recipient the commission is absorbed by the shop's P&L
	// account: it stays metadata on the parent and no satellite row exists.
	var satellite *ledger.Movement
	if req.CommissionRecipientID != nil && commission != nil && commission.IsPositive() {
		satellite = BuildCommissionSatellite(parent, *req.CommissionRecipientID, s.numbers)
	}
	return parent, satellite, nil
}

// BuildCommissionSatellite constructs the linked movement recording a
// commission payable to a designated customer. The satellite carries the
// parent's customer, type and creation time so statements can reconstruct
// "base + commission = total"; its amount is the commission in the
// commission's own currency.
func BuildCommissionSatellite(parent *ledger.Movement, recipientID uuid.UUID, numbers sequence.NumberGenerator) *ledger.Movement {
	parentID := parent.ID
	recipient := recipientID
	return &ledger.Movement{
		ID:                          uuid.New(),
		MovementNumber:              sequence.NextOrFallback(numbers, sequence.MovementPrefix),
		CustomerID:                  parent.CustomerID,
		Type:                        parent.Type,
		Amount:                      *parent.Commission,
		CommissionRecipientID:       &recipient,
		IsCommissionMovement:        true,
		RelatedCommissionMovementID: &parentID,
		IsInternalTransfer:          parent.IsInternalTransfer,
		TransferDirection:           parent.TransferDirection,
		Notes:                       parent.Notes,
		CreatedAt:                   parent.CreatedAt,
	}
}

// UpdateRequest is an operator correction to an existing movement. Nil
// fields are untouched. Changing the amount re-states the movement in the
// given currency; no re-netting happens on update.
type UpdateRequest struct {
	Amount          *float64
	Currency        currency.Code
	ReceiptNumber   *string
	SenderName      *string
	BeneficiaryName *string
	Notes           *string
}

// Update applies an operator correction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*ledger.Movement, error) {
	patch := repository.MovementPatch{
		ReceiptNumber:   req.ReceiptNumber,
		SenderName:      req.SenderName,
		BeneficiaryName: req.BeneficiaryName,
		Notes:           req.Notes,
	}
	if req.Amount != nil {
		code := req.Currency
		if code == "" {
			return nil, ledger.ErrMissingRequiredField
		}
		amount, err := money.New(*req.Amount, code)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			return nil, ledger.ErrInvalidAmount
		}
		patch.Amount = &amount
	}

	var updated *ledger.Movement
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		movements, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		if err := movements.Update(ctx, id, patch); err != nil {
			return err
		}
		updated, err = movements.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("movement updated", "movementID", id)
	return updated, nil
}

// Delete removes a movement and its linked commission satellites. The
// deletion is permanent and takes effect in every derived balance
// immediately.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		movements, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		satellites, err := movements.ListSatellites(ctx, id)
		if err != nil {
			return err
		}
		for _, sat := range satellites {
			if err := movements.Delete(ctx, sat.ID); err != nil {
				return err
			}
		}
		return movements.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("delete movement failed", "movementID", id, "error", err)
		return err
	}
	s.logger.Info("movement deleted", "movementID", id)
	return nil
}

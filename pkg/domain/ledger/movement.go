package ledger

import (
	"time"

	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/google/uuid"
)

// MovementType encodes the direction of a movement. Direction is never
// encoded by the sign of the amount.
type MovementType string

const (
	// MovementIncoming means the shop disburses funds to the customer ("له").
	MovementIncoming MovementType = "incoming"
	// MovementOutgoing means the customer pays funds into the shop ("عليه").
	MovementOutgoing MovementType = "outgoing"
)

// IsValid reports whether the type is one of the two known directions.
func (t MovementType) IsValid() bool {
	return t == MovementIncoming || t == MovementOutgoing
}

// TransferDirection marks which internal-transfer protocol produced a movement.
type TransferDirection string

const (
	TransferCustomerToCustomer TransferDirection = "customer_to_customer"
	TransferShopToCustomer     TransferDirection = "shop_to_customer"
	TransferCustomerToShop     TransferDirection = "customer_to_shop"
)

// IsValid reports whether the direction is one of the known protocols.
func (d TransferDirection) IsValid() bool {
	switch d {
	case TransferCustomerToCustomer, TransferShopToCustomer, TransferCustomerToShop:
		return true
	}
	return false
}

// CommissionRecipientTo routes a transfer commission to the receiving
// customer; an empty recipient routes it to the shop's P&L account.
const CommissionRecipientTo = "to"

// Movement is a single-customer record of money moving between the shop and
// a customer, in one currency. The persisted amount is already net of any
// same-currency commission.
//
// Invariants:
//   - Amount is always positive; MovementType carries the direction.
//   - A commission satellite (IsCommissionMovement) references exactly one
//     parent movement and carries the parent's CustomerID, Type and Currency.
//   - Every movement belongs to exactly one customer; transfers produce a
//     pair of movements, one per side. The shop has no movement rows.
type Movement struct {
	ID             uuid.UUID
	MovementNumber string
	ReceiptNumber  string
	CustomerID     uuid.UUID
	Type           MovementType
	Amount         money.Money

	// Commission is the fee attached to this movement. When its currency
	// differs from the movement currency it is informational only and does
	// not reduce Amount.
	Commission            *money.Money
	CommissionRecipientID *uuid.UUID

	// IsCommissionMovement marks a satellite row that exists purely to
	// record a commission payable to a designated recipient, linked back to
	// its parent via RelatedCommissionMovementID.
	IsCommissionMovement        bool
	RelatedCommissionMovementID *uuid.UUID

	IsInternalTransfer bool
	TransferDirection  TransferDirection

	SenderName      string
	BeneficiaryName string
	TransferNumber  string
	Notes           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the movement's own invariants. It does not check
// referential integrity (customer existence, parent linkage); the store and
// services own those.
func (m *Movement) Validate() error {
	if m.CustomerID == uuid.Nil {
		return ErrMissingRequiredField
	}
	if !m.Type.IsValid() {
		return ErrMissingRequiredField
	}
	if m.Amount.Currency() == "" {
		return ErrMissingRequiredField
	}
	if !m.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if m.Commission != nil && m.Commission.IsNegative() {
		return ErrInvalidCommission
	}
	return nil
}

// IsSatellite reports whether this row is a commission satellite linked to a
// parent movement.
func (m *Movement) IsSatellite() bool {
	return m.IsCommissionMovement && m.RelatedCommissionMovementID != nil
}

// LinksTo reports whether this satellite belongs to the given parent: linked
// by ID and matching the parent's customer, type and currency. Statement
// math relies on this to reconstruct "base + commission = total".
func (m *Movement) LinksTo(parent *Movement) bool {
	return m.IsSatellite() &&
		*m.RelatedCommissionMovementID == parent.ID &&
		m.CustomerID == parent.CustomerID &&
		m.Type == parent.Type &&
		m.Amount.IsSameCurrency(parent.Amount)
}

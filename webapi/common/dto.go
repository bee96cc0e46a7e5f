package common

import (
	"time"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/google/uuid"
)

// MovementResponse is the wire representation of a movement, shared by the
// movement, transfer and statement endpoints. Amounts are in main currency
// units.
type MovementResponse struct {
	ID                          uuid.UUID  `json:"id"`
	MovementNumber              string     `json:"movement_number"`
	ReceiptNumber               string     `json:"receipt_number,omitempty"`
	CustomerID                  uuid.UUID  `json:"customer_id"`
	Type                        string     `json:"movement_type"`
	Amount                      float64    `json:"amount"`
	Currency                    string     `json:"currency"`
	Commission                  *float64   `json:"commission,omitempty"`
	CommissionCurrency          string     `json:"commission_currency,omitempty"`
	CommissionRecipientID       *uuid.UUID `json:"commission_recipient_id,omitempty"`
	IsCommissionMovement        bool       `json:"is_commission_movement"`
	RelatedCommissionMovementID *uuid.UUID `json:"related_commission_movement_id,omitempty"`
	IsInternalTransfer          bool       `json:"is_internal_transfer"`
	TransferDirection           string     `json:"transfer_direction,omitempty"`
	SenderName                  string     `json:"sender_name,omitempty"`
	BeneficiaryName             string     `json:"beneficiary_name,omitempty"`
	TransferNumber              string     `json:"transfer_number,omitempty"`
	Notes                       string     `json:"notes,omitempty"`
	CreatedAt                   time.Time  `json:"created_at"`
}

// FromMovement maps a domain movement to its wire representation.
func FromMovement(m *ledger.Movement) MovementResponse {
	resp := MovementResponse{
		ID:                          m.ID,
		MovementNumber:              m.MovementNumber,
		ReceiptNumber:               m.ReceiptNumber,
		CustomerID:                  m.CustomerID,
		Type:                        string(m.Type),
		Amount:                      m.Amount.AmountFloat(),
		Currency:                    m.Amount.Currency().String(),
		CommissionRecipientID:       m.CommissionRecipientID,
		IsCommissionMovement:        m.IsCommissionMovement,
		RelatedCommissionMovementID: m.RelatedCommissionMovementID,
		IsInternalTransfer:          m.IsInternalTransfer,
		TransferDirection:           string(m.TransferDirection),
		SenderName:                  m.SenderName,
		BeneficiaryName:             m.BeneficiaryName,
		TransferNumber:              m.TransferNumber,
		Notes:                       m.Notes,
		CreatedAt:                   m.CreatedAt,
	}
	if m.Commission != nil {
		v := m.Commission.AmountFloat()
		resp.Commission = &v
		resp.CommissionCurrency = m.Commission.Currency().String()
	}
	return resp
}

// FromMovements maps a slice of movements.
func FromMovements(ms []*ledger.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMovement(m))
	}
	return out
}

// CustomerResponse is the wire representation of a customer.
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromCustomer maps a domain customer to its wire representation.
func FromCustomer(c *ledger.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		AccountNumber: c.AccountNumber,
		CreatedAt:     c.CreatedAt,
	}
}

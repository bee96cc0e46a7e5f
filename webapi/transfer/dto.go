package transfer

import "github.com/google/uuid"

// CreateTransferRequest is the transfer form payload. A nil party on either
// side means the shop. The idempotency key may also be supplied via the
// X-Idempotency-Key header, which takes precedence.
type CreateTransferRequest struct {
	FromCustomerID      *uuid.UUID `json:"from_customer_id"`
	ToCustomerID        *uuid.UUID `json:"to_customer_id"`
	Amount              float64    `json:"amount" validate:"required,gt=0"`
	Currency            string     `json:"currency" validate:"required,len=3"`
	Commission          float64    `json:"commission" validate:"omitempty,gte=0"`
	CommissionRecipient string     `json:"commission_recipient" validate:"omitempty,oneof=to"`
	SenderName          string     `json:"sender_name"`
	BeneficiaryName     string     `json:"beneficiary_name"`
	Notes               string     `json:"notes"`
	IdempotencyKey      string     `json:"idempotency_key"`
}

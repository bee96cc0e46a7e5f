package movement

import "github.com/google/uuid"

// RecordMovementRequest is the new-movement form payload. Amount is in main
// currency units; a same-currency commission on an incoming movement is
// netted server-side.
type RecordMovementRequest struct {
	CustomerID            uuid.UUID  `json:"customer_id" validate:"required"`
	MovementType          string     `json:"movement_type" validate:"required,oneof=incoming outgoing"`
	Amount                float64    `json:"amount" validate:"required,gt=0"`
	Currency              string     `json:"currency" validate:"required,len=3"`
	Commission            *float64   `json:"commission" validate:"omitempty,gte=0"`
	CommissionCurrency    string     `json:"commission_currency" validate:"omitempty,len=3"`
	CommissionRecipientID *uuid.UUID `json:"commission_recipient_id"`
	ReceiptNumber         string     `json:"receipt_number"`
	SenderName            string     `json:"sender_name"`
	BeneficiaryName       string     `json:"beneficiary_name"`
	Notes                 string     `json:"notes"`
}

// UpdateMovementRequest is an operator correction. Omitted fields are kept.
type UpdateMovementRequest struct {
	Amount          *float64 `json:"amount" validate:"omitempty,gt=0"`
	Currency        string   `json:"currency" validate:"omitempty,len=3"`
	ReceiptNumber   *string  `json:"receipt_number"`
	SenderName      *string  `json:"sender_name"`
	BeneficiaryName *string  `json:"beneficiary_name"`
	Notes           *string  `json:"notes"`
}

package movement

import (
	"time"

	"github.com/google/uuid"
)

// Movement represents a movement record in the database. Amounts are stored
// in the smallest currency unit. There is no soft delete: removing a row
// removes it from every derived balance.
type Movement struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	MovementNumber string    `gorm:"uniqueIndex;not null;size:40"`
	ReceiptNumber  string    `gorm:"size:40"`

	CustomerID uuid.UUID `gorm:"type:uuid;index:idx_movements_customer_currency;not null"`
	Type       string    `gorm:"not null;size:10"`
	Amount     int64     `gorm:"not null"`
	Currency   string    `gorm:"type:varchar(3);index:idx_movements_customer_currency;not null"`

	Commission            *int64
	CommissionCurrency    *string    `gorm:"type:varchar(3)"`
	CommissionRecipientID *uuid.UUID `gorm:"type:uuid"`

	IsCommissionMovement        bool       `gorm:"not null;default:false"`
	RelatedCommissionMovementID *uuid.UUID `gorm:"type:uuid;index"`

	IsInternalTransfer bool   `gorm:"not null;default:false"`
	TransferDirection  string `gorm:"size:24"`

	SenderName      string `gorm:"size:120"`
	BeneficiaryName string `gorm:"size:120"`
	TransferNumber  string `gorm:"size:40"`
	Notes           string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the Movement model.
func (Movement) TableName() string {
	return "movements"
}

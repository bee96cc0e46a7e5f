package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a customer record in the database. There is no stored
// balance column; balances are always derived from movements.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Name          string    `gorm:"not null;size:120"`
	Phone         string    `gorm:"size:32"`
	AccountNumber string    `gorm:"uniqueIndex;not null;size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string {
	return "customers"
}

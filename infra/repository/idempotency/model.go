package idempotency

import "time"

// Key reserves a client-generated request key. The unique index makes the
// reservation atomic with the movements inserted in the same transaction.
type Key struct {
	Key       string `gorm:"primary_key;size:80"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Key model.
func (Key) TableName() string {
	return "idempotency_keys"
}

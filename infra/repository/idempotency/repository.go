package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	repo "github.com/albahri/sarraf/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates an idempotency-key repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.IdempotencyRepository {
	return &repository{db: db}
}

// Reserve implements repo.IdempotencyRepository. A key older than the window
// is reclaimed; a key inside the window rejects the request.
func (r *repository) Reserve(ctx context.Context, key string, window time.Duration) error {
	var existing Key
	err := r.db.WithContext(ctx).First(&existing, "key = ?", key).Error
	switch {
	case err == nil:
		if time.Since(existing.CreatedAt) < window {
			return ledger.ErrDuplicateRequest
		}
		// Stale reservation: refresh it for this request.
		return r.db.WithContext(ctx).Model(&Key{}).
			Where("key = ?", key).
			Update("created_at", time.Now().UTC()).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := Key{Key: key, CreatedAt: time.Now().UTC()}
		insert := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}
		// A concurrent request won the insert race.
		if insert.RowsAffected == 0 {
			return ledger.ErrDuplicateRequest
		}
		return nil
	default:
		return err
	}
}

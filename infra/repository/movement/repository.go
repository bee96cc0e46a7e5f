package movement

import (
	"context"
	"errors"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	repo "github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a movement repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.MovementRepository {
	return &repository{db: db}
}

// Create implements repo.MovementRepository.
func (r *repository) Create(ctx context.Context, m *ledger.Movement) error {
	row := mapDomainToModel(m)
	return r.db.WithContext(ctx).Create(&row).Error
}

// CreateBatch implements repo.MovementRepository. All rows are inserted in
// one statement; combined with the UnitOfWork transaction this is the
// all-or-nothing write transfers rely on.
func (r *repository) CreateBatch(ctx context.Context, ms []*ledger.Movement) error {
	if len(ms) == 0 {
		return nil
	}
	rows := make([]Movement, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, mapDomainToModel(m))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Get implements repo.MovementRepository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*ledger.Movement, error) {
	var row Movement
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrMovementNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

// List implements repo.MovementRepository. Results are ordered by
// created_at ascending; created_at is the sole ordering key for
// running-balance computation.
func (r *repository) List(ctx context.Context, f repo.MovementFilter) ([]*ledger.Movement, error) {
	q := r.db.WithContext(ctx).Model(&Movement{})
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Currency != "" {
		q = q.Where("currency = ?", string(f.Currency))
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.ExcludeSatellites {
		q = q.Where("is_commission_movement = ?", false)
	}

	var rows []Movement
	if err := q.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*ledger.Movement, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

// ListSatellites implements repo.MovementRepository.
func (r *repository) ListSatellites(ctx context.Context, parentID uuid.UUID) ([]*ledger.Movement, error) {
	var rows []Movement
	err := r.db.WithContext(ctx).
		Where("is_commission_movement = ? AND related_commission_movement_id = ?", true, parentID).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*ledger.Movement, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

// Update implements repo.MovementRepository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, patch repo.MovementPatch) error {
	updates := mapPatchToUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Movement{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrMovementNotFound
	}
	return nil
}

// Delete implements repo.MovementRepository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Movement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrMovementNotFound
	}
	return nil
}

// mapPatchToUpdates maps a MovementPatch to a map for GORM Updates.
func mapPatchToUpdates(patch repo.MovementPatch) map[string]any {
	updates := make(map[string]any)
	if patch.Amount != nil {
		updates["amount"] = patch.Amount.Amount()
		updates["currency"] = patch.Amount.Currency().String()
	}
	if patch.ReceiptNumber != nil {
		updates["receipt_number"] = *patch.ReceiptNumber
	}
	if patch.SenderName != nil {
		updates["sender_name"] = *patch.SenderName
	}
	if patch.BeneficiaryName != nil {
		updates["beneficiary_name"] = *patch.BeneficiaryName
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	return updates
}

// mapDomainToModel maps a domain movement to its database row.
func mapDomainToModel(m *ledger.Movement) Movement {
	row := Movement{
		ID:                          m.ID,
		MovementNumber:              m.MovementNumber,
		ReceiptNumber:               m.ReceiptNumber,
		CustomerID:                  m.CustomerID,
		Type:                        string(m.Type),
		Amount:                      m.Amount.Amount(),
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
		amt := m.Commission.Amount()
		cur := m.Commission.Currency().String()
		row.Commission = &amt
		row.CommissionCurrency = &cur
	}
	return row
}

// mapModelToDomain maps a database row back to the domain entity.
func mapModelToDomain(row *Movement) *ledger.Movement {
	m := &ledger.Movement{
		ID:                          row.ID,
		MovementNumber:              row.MovementNumber,
		ReceiptNumber:               row.ReceiptNumber,
		CustomerID:                  row.CustomerID,
		Type:                        ledger.MovementType(row.Type),
		Amount:                      money.NewFromData(row.Amount, row.Currency),
		CommissionRecipientID:       row.CommissionRecipientID,
		IsCommissionMovement:        row.IsCommissionMovement,
		RelatedCommissionMovementID: row.RelatedCommissionMovementID,
		IsInternalTransfer:          row.IsInternalTransfer,
		TransferDirection:           ledger.TransferDirection(row.TransferDirection),
		SenderName:                  row.SenderName,
		BeneficiaryName:             row.BeneficiaryName,
		TransferNumber:              row.TransferNumber,
		Notes:                       row.Notes,
		CreatedAt:                   row.CreatedAt,
		UpdatedAt:                   row.UpdatedAt,
	}
	if row.Commission != nil && row.CommissionCurrency != nil {
		c := money.NewFromData(*row.Commission, *row.CommissionCurrency)
		m.Commission = &c
	}
	return m
}

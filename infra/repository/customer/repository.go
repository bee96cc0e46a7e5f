package customer

import (
	"context"
	"errors"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	repo "github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a customer repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.CustomerRepository {
	return &repository{db: db}
}

// Create implements repo.CustomerRepository.
func (r *repository) Create(ctx context.Context, c *ledger.Customer) error {
	row := mapDomainToModel(c)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Get implements repo.CustomerRepository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*ledger.Customer, error) {
	var row Customer
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrCustomerNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

// GetByAccountNumber implements repo.CustomerRepository.
func (r *repository) GetByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Customer, error) {
	var row Customer
	if err := r.db.WithContext(ctx).First(&row, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrCustomerNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&row), nil
}

// List implements repo.CustomerRepository.
func (r *repository) List(ctx context.Context) ([]*ledger.Customer, error) {
	var rows []Customer
	if err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*ledger.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

// Update implements repo.CustomerRepository.
func (r *repository) Update(ctx context.Context, c *ledger.Customer) error {
	res := r.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":           c.Name,
		"phone":          c.Phone,
		"account_number": c.AccountNumber,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrCustomerNotFound
	}
	return nil
}

// Delete implements repo.CustomerRepository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledger.ErrCustomerNotFound
	}
	return nil
}

// mapDomainToModel maps a domain customer to its database row.
func mapDomainToModel(c *ledger.Customer) Customer {
	return Customer{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		AccountNumber: c.AccountNumber,
		CreatedAt:     c.CreatedAt,
	}
}

// mapModelToDomain maps a database row back to the domain entity.
func mapModelToDomain(row *Customer) *ledger.Customer {
	return &ledger.Customer{
		ID:            row.ID,
		Name:          row.Name,
		Phone:         row.Phone,
		AccountNumber: row.AccountNumber,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// Package fixtures provides in-memory test doubles for the repository
// contracts. MemoryUnitOfWork emulates transactional semantics by
// snapshotting state before Do and restoring it when fn fails, so service
// tests can assert all-or-nothing behavior without a database.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
)

// MemoryUnitOfWork is an in-memory repository.UnitOfWork.
type MemoryUnitOfWork struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*ledger.Customer
	movements map[uuid.UUID]*ledger.Movement
	keys      map[string]time.Time

	// FailCreateBatch, when set, makes the next CreateBatch fail with the
	// given error after n-1 successful rows would have been written.
	FailCreateBatch error
}

// NewMemoryUnitOfWork creates an empty in-memory unit of work.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{
		customers: make(map[uuid.UUID]*ledger.Customer),
		movements: make(map[uuid.UUID]*ledger.Movement),
		keys:      make(map[string]time.Time),
	}
}

// SeedCustomer registers a customer directly, bypassing services.
func (u *MemoryUnitOfWork) SeedCustomer(c *ledger.Customer) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.customers[c.ID] = c
}

// SeedMovement inserts a movement directly, bypassing services.
func (u *MemoryUnitOfWork) SeedMovement(m *ledger.Movement) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.movements[m.ID] = m
}

// Movements returns all stored movements, ordered by created_at ascending.
func (u *MemoryUnitOfWork) Movements() []*ledger.Movement {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sortedLocked()
}

func (u *MemoryUnitOfWork) sortedLocked() []*ledger.Movement {
	out := make([]*ledger.Movement, 0, len(u.movements))
	for _, m := range u.movements {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Do runs fn against a snapshot-protected state: when fn fails every write
// it made is discarded.
func (u *MemoryUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	customers := make(map[uuid.UUID]*ledger.Customer, len(u.customers))
	for k, v := range u.customers {
		customers[k] = v
	}
	movements := make(map[uuid.UUID]*ledger.Movement, len(u.movements))
	for k, v := range u.movements {
		movements[k] = v
	}
	keys := make(map[string]time.Time, len(u.keys))
	for k, v := range u.keys {
		keys[k] = v
	}
	u.mu.Unlock()

	if err := fn(u); err != nil {
		u.mu.Lock()
		u.customers = customers
		u.movements = movements
		u.keys = keys
		u.mu.Unlock()
		return err
	}
	return nil
}

// CustomerRepository implements repository.UnitOfWork.
func (u *MemoryUnitOfWork) CustomerRepository() (repository.CustomerRepository, error) {
	return (*memoryCustomerRepo)(u), nil
}

// MovementRepository implements repository.UnitOfWork.
func (u *MemoryUnitOfWork) MovementRepository() (repository.MovementRepository, error) {
	return (*memoryMovementRepo)(u), nil
}

// IdempotencyRepository implements repository.UnitOfWork.
func (u *MemoryUnitOfWork) IdempotencyRepository() (repository.IdempotencyRepository, error) {
	return (*memoryIdempotencyRepo)(u), nil
}

type memoryCustomerRepo MemoryUnitOfWork

func (r *memoryCustomerRepo) Create(ctx context.Context, c *ledger.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = c
	return nil
}

func (r *memoryCustomerRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, ledger.ErrCustomerNotFound
	}
	return c, nil
}

func (r *memoryCustomerRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.AccountNumber == accountNumber {
			return c, nil
		}
	}
	return nil, ledger.ErrCustomerNotFound
}

func (r *memoryCustomerRepo) List(ctx context.Context) ([]*ledger.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ledger.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryCustomerRepo) Update(ctx context.Context, c *ledger.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return ledger.ErrCustomerNotFound
	}
	r.customers[c.ID] = c
	return nil
}

func (r *memoryCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return ledger.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

type memoryMovementRepo MemoryUnitOfWork

func (r *memoryMovementRepo) Create(ctx context.Context, m *ledger.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements[m.ID] = m
	return nil
}

func (r *memoryMovementRepo) CreateBatch(ctx context.Context, ms []*ledger.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateBatch != nil {
		for _, m := range ms[:len(ms)-1] {
			r.movements[m.ID] = m
		}
		return r.FailCreateBatch
	}
	for _, m := range ms {
		r.movements[m.ID] = m
	}
	return nil
}

func (r *memoryMovementRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movements[id]
	if !ok {
		return nil, ledger.ErrMovementNotFound
	}
	return m, nil
}

func (r *memoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*ledger.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ledger.Movement
	for _, m := range (*MemoryUnitOfWork)(r).sortedLocked() {
		if f.CustomerID != nil && m.CustomerID != *f.CustomerID {
			continue
		}
		if f.Currency != "" && m.Amount.Currency() != f.Currency {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		if f.ExcludeSatellites && m.IsSatellite() {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryMovementRepo) ListSatellites(ctx context.Context, parentID uuid.UUID) ([]*ledger.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ledger.Movement
	for _, m := range (*MemoryUnitOfWork)(r).sortedLocked() {
		if m.IsSatellite() && *m.RelatedCommissionMovementID == parentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryMovementRepo) Update(ctx context.Context, id uuid.UUID, patch repository.MovementPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movements[id]
	if !ok {
		return ledger.ErrMovementNotFound
	}
	updated := *m
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.ReceiptNumber != nil {
		updated.ReceiptNumber = *patch.ReceiptNumber
	}
	if patch.SenderName != nil {
		updated.SenderName = *patch.SenderName
	}
	if patch.BeneficiaryName != nil {
		updated.BeneficiaryName = *patch.BeneficiaryName
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	updated.UpdatedAt = time.Now().UTC()
	r.movements[id] = &updated
	return nil
}

func (r *memoryMovementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movements[id]; !ok {
		return ledger.ErrMovementNotFound
	}
	delete(r.movements, id)
	return nil
}

type memoryIdempotencyRepo MemoryUnitOfWork

func (r *memoryIdempotencyRepo) Reserve(ctx context.Context, key string, window time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reserved, ok := r.keys[key]; ok && time.Since(reserved) < window {
		return ledger.ErrDuplicateRequest
	}
	r.keys[key] = time.Now().UTC()
	return nil
}

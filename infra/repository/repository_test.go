package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	infrarepo "github.com/albahri/sarraf/infra/repository"
	custmodel "github.com/albahri/sarraf/infra/repository/customer"
	idemmodel "github.com/albahri/sarraf/infra/repository/idempotency"
	movmodel "github.com/albahri/sarraf/infra/repository/movement"
	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&custmodel.Customer{},
		&movmodel.Movement{},
		&idemmodel.Key{},
	))
	return db
}

func newCustomer(t *testing.T, name, account string) *ledger.Customer {
	t.Helper()
	c, err := ledger.NewCustomer().WithName(name).WithAccountNumber(account).Build()
	require.NoError(t, err)
	return c
}

func newMovement(customerID uuid.UUID, t ledger.MovementType, amount int64, code string, createdAt time.Time) *ledger.Movement {
	return &ledger.Movement{
		ID:             uuid.New(),
		MovementNumber: "MOV-" + uuid.NewString(),
		CustomerID:     customerID,
		Type:           t,
		Amount:         money.NewFromData(amount, code),
		CreatedAt:      createdAt,
	}
}

func TestCustomerRepository_CRUD(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	repo, err := uow.CustomerRepository()
	require.NoError(t, err)

	created := newCustomer(t, "Ahmed", "ACC-1")
	require.NoError(t, repo.Create(ctx, created))

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ahmed", got.Name)
		assert.Equal(t, "ACC-1", got.AccountNumber)
	})

	t.Run("get by account number", func(t *testing.T) {
		got, err := repo.GetByAccountNumber(ctx, "ACC-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ledger.ErrCustomerNotFound)
	})

	t.Run("duplicate account number rejected", func(t *testing.T) {
		dup := newCustomer(t, "Salim", "ACC-1")
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("update", func(t *testing.T) {
		created.Phone = "777000111"
		require.NoError(t, repo.Update(ctx, created))
		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "777000111", got.Phone)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err := repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ledger.ErrCustomerNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), ledger.ErrCustomerNotFound)
	})
}

func TestMovementRepository_RoundTrip(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	repo, err := uow.MovementRepository()
	require.NoError(t, err)

	cust := uuid.New()
	commission := money.NewFromData(500, "SAR")
	recipient := uuid.New()
	m := newMovement(cust, ledger.MovementIncoming, 9500, "USD", time.Now().UTC())
	m.Commission = &commission
	m.CommissionRecipientID = &recipient
	m.SenderName = "Ali"
	m.Notes = "hawala"

	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9500), got.Amount.Amount())
	assert.Equal(t, "USD", got.Amount.Currency().String())
	require.NotNil(t, got.Commission)
	assert.Equal(t, int64(500), got.Commission.Amount())
	assert.Equal(t, "SAR", got.Commission.Currency().String())
	require.NotNil(t, got.CommissionRecipientID)
	assert.Equal(t, recipient, *got.CommissionRecipientID)
	assert.Equal(t, "Ali", got.SenderName)
}

func TestMovementRepository_ListFilterAndOrder(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	repo, err := uow.MovementRepository()
	require.NoError(t, err)

	cust, other := uuid.New(), uuid.New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	third := newMovement(cust, ledger.MovementIncoming, 300, "USD", base.Add(2*time.Minute))
	first := newMovement(cust, ledger.MovementIncoming, 100, "USD", base)
	second := newMovement(cust, ledger.MovementOutgoing, 200, "USD", base.Add(time.Minute))
	sar := newMovement(cust, ledger.MovementIncoming, 400, "SAR", base)
	foreign := newMovement(other, ledger.MovementIncoming, 500, "USD", base)
	require.NoError(t, repo.CreateBatch(ctx, []*ledger.Movement{third, first, second, sar, foreign}))

	t.Run("ordered by created_at ascending", func(t *testing.T) {
		got, err := repo.List(ctx, repository.MovementFilter{CustomerID: &cust, Currency: "USD"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
		assert.Equal(t, third.ID, got[2].ID)
	})

	t.Run("time window", func(t *testing.T) {
		from := base.Add(30 * time.Second)
		to := base.Add(90 * time.Second)
		got, err := repo.List(ctx, repository.MovementFilter{CustomerID: &cust, Currency: "USD", From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)
	})

	t.Run("satellites excluded on request", func(t *testing.T) {
		parentID := first.ID
		sat := newMovement(cust, ledger.MovementIncoming, 50, "USD", base.Add(time.Second))
		sat.IsCommissionMovement = true
		sat.RelatedCommissionMovementID = &parentID
		require.NoError(t, repo.Create(ctx, sat))

		all, err := repo.List(ctx, repository.MovementFilter{CustomerID: &cust, Currency: "USD"})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		plain, err := repo.List(ctx, repository.MovementFilter{CustomerID: &cust, Currency: "USD", ExcludeSatellites: true})
		require.NoError(t, err)
		assert.Len(t, plain, 3)

		sats, err := repo.ListSatellites(ctx, parentID)
		require.NoError(t, err)
		require.Len(t, sats, 1)
		assert.Equal(t, sat.ID, sats[0].ID)
	})
}

func TestMovementRepository_UpdateAndDelete(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	repo, err := uow.MovementRepository()
	require.NoError(t, err)

	m := newMovement(uuid.New(), ledger.MovementOutgoing, 1000, "USD", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, m))

	t.Run("patch amount restates currency", func(t *testing.T) {
		amt := money.NewFromData(7500, "SAR")
		notes := "corrected"
		require.NoError(t, repo.Update(ctx, m.ID, repository.MovementPatch{Amount: &amt, Notes: &notes}))

		got, err := repo.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7500), got.Amount.Amount())
		assert.Equal(t, "SAR", got.Amount.Currency().String())
		assert.Equal(t, "corrected", got.Notes)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, m.ID, repository.MovementPatch{}))
	})

	t.Run("unknown id", func(t *testing.T) {
		notes := "x"
		assert.ErrorIs(t, repo.Update(ctx, uuid.New(), repository.MovementPatch{Notes: &notes}), ledger.ErrMovementNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), ledger.ErrMovementNotFound)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, m.ID))
		_, err := repo.Get(ctx, m.ID)
		assert.ErrorIs(t, err, ledger.ErrMovementNotFound)
	})
}

func TestIdempotencyRepository_Reserve(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	repo, err := uow.IdempotencyRepository()
	require.NoError(t, err)

	require.NoError(t, repo.Reserve(ctx, "req-1", time.Hour))
	assert.ErrorIs(t, repo.Reserve(ctx, "req-1", time.Hour), ledger.ErrDuplicateRequest)
	require.NoError(t, repo.Reserve(ctx, "req-2", time.Hour))

	// a zero window means every reservation is already stale
	require.NoError(t, repo.Reserve(ctx, "req-1", 0))
}

func TestUoW_RollsBackOnError(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	cust := uuid.New()

	boom := errors.New("validation failed downstream")
	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		movements, err := tx.MovementRepository()
		if err != nil {
			return err
		}
		if err := movements.Create(ctx, newMovement(cust, ledger.MovementIncoming, 100, "USD", time.Now().UTC())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	movements, err := uow.MovementRepository()
	require.NoError(t, err)
	got, err := movements.List(ctx, repository.MovementFilter{CustomerID: &cust})
	require.NoError(t, err)
	assert.Empty(t, got, "the insert must have been rolled back")
}

func TestUoW_CommitsOnSuccess(t *testing.T) {
	uow := infrarepo.NewUoW(newTestDB(t))
	ctx := context.Background()
	cust := uuid.New()

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		movements, err := tx.MovementRepository()
		if err != nil {
			return err
		}
		return movements.CreateBatch(ctx, []*ledger.Movement{
			newMovement(cust, ledger.MovementOutgoing, 100, "USD", time.Now().UTC()),
			newMovement(cust, ledger.MovementIncoming, 200, "USD", time.Now().UTC()),
		})
	})
	require.NoError(t, err)

	movements, err := uow.MovementRepository()
	require.NoError(t, err)
	got, err := movements.List(ctx, repository.MovementFilter{CustomerID: &cust})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

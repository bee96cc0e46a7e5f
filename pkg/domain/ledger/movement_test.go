package ledger_test

import (
	"testing"

	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovement(t *testing.T) *ledger.Movement {
	t.Helper()
	amount, err := money.New(100, "USD")
	require.NoError(t, err)
	return &ledger.Movement{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Type:       ledger.MovementIncoming,
		Amount:     amount,
	}
}

func TestMovement_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validMovement(t).Validate())
	})

	t.Run("missing customer", func(t *testing.T) {
		m := validMovement(t)
		m.CustomerID = uuid.Nil
		assert.ErrorIs(t, m.Validate(), ledger.ErrMissingRequiredField)
	})

	t.Run("unknown type", func(t *testing.T) {
		m := validMovement(t)
		m.Type = "sideways"
		assert.ErrorIs(t, m.Validate(), ledger.ErrMissingRequiredField)
	})

	t.Run("zero amount", func(t *testing.T) {
		m := validMovement(t)
		m.Amount = money.NewFromData(0, "USD")
		assert.ErrorIs(t, m.Validate(), ledger.ErrInvalidAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		m := validMovement(t)
		m.Amount = money.NewFromData(-100, "USD")
		assert.ErrorIs(t, m.Validate(), ledger.ErrInvalidAmount)
	})

	t.Run("negative commission", func(t *testing.T) {
		m := validMovement(t)
		c := money.NewFromData(-5, "USD")
		m.Commission = &c
		assert.ErrorIs(t, m.Validate(), ledger.ErrInvalidCommission)
	})
}

func TestMovementType_IsValid(t *testing.T) {
	assert.True(t, ledger.MovementIncoming.IsValid())
	assert.True(t, ledger.MovementOutgoing.IsValid())
	assert.False(t, ledger.MovementType("").IsValid())
	assert.False(t, ledger.MovementType("deposit").IsValid())
}

func TestMovement_LinksTo(t *testing.T) {
	parent := validMovement(t)

	satellite := func() *ledger.Movement {
		parentID := parent.ID
		return &ledger.Movement{
			ID:                          uuid.New(),
			CustomerID:                  parent.CustomerID,
			Type:                        parent.Type,
			Amount:                      money.NewFromData(500, "USD"),
			IsCommissionMovement:        true,
			RelatedCommissionMovementID: &parentID,
		}
	}

	t.Run("matching satellite links", func(t *testing.T) {
		assert.True(t, satellite().LinksTo(parent))
	})

	t.Run("plain movement never links", func(t *testing.T) {
		assert.False(t, validMovement(t).LinksTo(parent))
	})

	t.Run("different customer does not link", func(t *testing.T) {
		s := satellite()
		s.CustomerID = uuid.New()
		assert.False(t, s.LinksTo(parent))
	})

	t.Run("different type does not link", func(t *testing.T) {
		s := satellite()
		s.Type = ledger.MovementOutgoing
		assert.False(t, s.LinksTo(parent))
	})

	t.Run("different currency does not link", func(t *testing.T) {
		s := satellite()
		s.Amount = money.NewFromData(500, "SAR")
		assert.False(t, s.LinksTo(parent))
	})

	t.Run("different parent does not link", func(t *testing.T) {
		other := uuid.New()
		s := satellite()
		s.RelatedCommissionMovementID = &other
		assert.False(t, s.LinksTo(parent))
	})
}

func TestCustomerBuilder(t *testing.T) {
	t.Run("builds with required fields", func(t *testing.T) {
		c, err := ledger.NewCustomer().
			WithName("Ahmed").
			WithPhone("777000111").
			WithAccountNumber("ACC-1").
			Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.Equal(t, "Ahmed", c.Name)
		assert.Equal(t, "ACC-1", c.AccountNumber)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := ledger.NewCustomer().WithAccountNumber("ACC-1").Build()
		assert.Error(t, err)
	})

	t.Run("account number required", func(t *testing.T) {
		_, err := ledger.NewCustomer().WithName("Ahmed").Build()
		assert.Error(t, err)
	})
}

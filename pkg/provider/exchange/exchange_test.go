package exchange_test

import (
	"context"
	"testing"

	"github.com/albahri/sarraf/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_Rate(t *testing.T) {
	src := exchange.NewStaticSource()

	t.Run("identity", func(t *testing.T) {
		rate, err := src.Rate(context.Background(), "USD", "USD")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("crossed through USD", func(t *testing.T) {
		rate, err := src.Rate(context.Background(), "USD", "SAR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("3.75")))

		inverse, err := src.Rate(context.Background(), "SAR", "USD")
		require.NoError(t, err)
		drift := rate.Mul(inverse).Sub(decimal.NewFromInt(1)).Abs()
		assert.True(t, drift.LessThan(decimal.New(1, -10)), "round trip drift %s", drift)
	})

	t.Run("unknown pair", func(t *testing.T) {
		_, err := src.Rate(context.Background(), "USD", "JPY")
		assert.ErrorIs(t, err, exchange.ErrRateUnavailable)
		_, err = src.Rate(context.Background(), "JPY", "USD")
		assert.ErrorIs(t, err, exchange.ErrRateUnavailable)
	})

	t.Run("overridden rate", func(t *testing.T) {
		src.SetRate("YER", decimal.NewFromInt(500))
		rate, err := src.Rate(context.Background(), "USD", "YER")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(500)))
	})
}

func TestConvert(t *testing.T) {
	src := exchange.NewStaticSource()

	converted, err := exchange.Convert(context.Background(), src, "USD", "SAR", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.RequireFromString("375")))

	_, err = exchange.Convert(context.Background(), src, "USD", "JPY", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, exchange.ErrRateUnavailable)
}

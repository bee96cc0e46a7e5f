// Package exchange defines the external exchange-rate source. The ledger
// core never converts currencies; rates feed the calculator and statistics
// screens only.
package exchange

import (
	"context"
	"errors"

	"github.com/albahri/sarraf/pkg/currency"
	"github.com/shopspring/decimal"
)

// ErrRateUnavailable is returned when the source has no rate for the pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateSource returns the rate for converting one unit of from into to.
type RateSource interface {
	Rate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error)
}

// StaticSource serves rates from a fixed table. It stands in for the real
// third-party rate API in development and tests.
type StaticSource struct {
	rates map[string]decimal.Decimal
}

// NewStaticSource creates a source seeded with indicative rates against USD.
func NewStaticSource() *StaticSource {
	s := &StaticSource{rates: make(map[string]decimal.Decimal)}
	for code, rate := range map[currency.Code]string{
		"USD": "1",
		"SAR": "3.75",
		"YER": "530",
		"TRY": "41.2",
		"EUR": "0.92",
		"GBP": "0.78",
		"AED": "3.6725",
	} {
		s.rates[code.String()] = decimal.RequireFromString(rate)
	}
	return s
}

// SetRate overrides one USD-relative rate.
func (s *StaticSource) SetRate(code currency.Code, rate decimal.Decimal) {
	s.rates[code.String()] = rate
}

// Rate implements RateSource by crossing both currencies through USD.
func (s *StaticSource) Rate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error) {
	fromUSD, ok := s.rates[from.String()]
	if !ok || fromUSD.IsZero() {
		return decimal.Zero, ErrRateUnavailable
	}
	toUSD, ok := s.rates[to.String()]
	if !ok {
		return decimal.Zero, ErrRateUnavailable
	}
	return toUSD.Div(fromUSD), nil
}

// Convert applies the pair's rate to an amount.
func Convert(ctx context.Context, src RateSource, from, to currency.Code, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := src.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

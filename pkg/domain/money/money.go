package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/albahri/sarraf/pkg/currency"
)

var (
	// ErrInvalidCurrencyCode is returned when a currency code is not three uppercase letters.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrUnsupportedCurrency is returned when a currency is not in the shop's catalog.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrCurrencyMismatch is returned when arithmetic mixes two different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Amount represents a monetary amount as an integer in the smallest currency unit.
type Amount = int64

// Money represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be a registered catalog currency.
//   - All arithmetic operations require matching currencies.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New creates a Money value from a main-unit amount (e.g., dollars) and a
// currency code.
// Invariants enforced:
//   - Currency code must be valid and registered in the catalog.
//   - Amount must not carry more decimal places than the currency allows.
//
// Returns Money or an error if any invariant is violated.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, ErrInvalidCurrencyCode
	}
	if !currency.IsSupported(code) {
		return Money{}, ErrUnsupportedCurrency
	}
	smallest, err := toSmallestUnit(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: code}, nil
}

// NewFromData creates a Money value from an amount already expressed in the
// smallest currency unit. Used for hydrating rows from the store; bypasses
// decimal-place checks.
func NewFromData(amount int64, code string) Money {
	return Money{amount: amount, currency: currency.Code(code)}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount { return m.amount }

// AmountFloat returns the amount as a float64 in the main currency unit.
func (m Money) AmountFloat() float64 {
	meta, ok := currency.Get(m.currency)
	if !ok {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}
	return float64(m.amount) / math.Pow10(meta.Decimals)
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code { return m.currency }

// Add adds another Money value of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract subtracts another Money value of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Negate returns the value with the opposite sign.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m.amount < 0 {
		return m.Negate()
	}
	return m
}

// Equals reports whether both currency and amount match.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// GreaterThan compares two same-currency values.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount > other.amount, nil
}

// LessThan compares two same-currency values.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount < other.amount, nil
}

// IsSameCurrency reports whether the other value carries the same currency.
func (m Money) IsSameCurrency(other Money) bool { return m.currency == other.currency }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// String formats the value with the currency's decimal places and code.
func (m Money) String() string {
	meta, ok := currency.Get(m.currency)
	if !ok {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}
	return fmt.Sprintf("%.*f %s", meta.Decimals, m.AmountFloat(), m.currency)
}

// toSmallestUnit converts a float64 amount to the smallest currency unit
// using big.Rat to avoid floating-point drift.
func toSmallestUnit(amount float64, code currency.Code) (int64, error) {
	meta, ok := currency.Get(code)
	if !ok {
		return 0, ErrUnsupportedCurrency
	}

	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.Split(amountStr, "."); len(parts) > 1 {
		decimals := strings.TrimRight(parts[1], "0")
		if len(decimals) > meta.Decimals {
			return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
		}
	}

	amountStr = fmt.Sprintf("%.*f", meta.Decimals, amount)
	rat, ok := new(big.Rat).SetString(amountStr)
	if !ok {
		return 0, fmt.Errorf("invalid amount format: %f", amount)
	}
	multiplier := int64(math.Pow10(meta.Decimals))
	smallest := new(big.Rat).Mul(rat, big.NewRat(multiplier, 1))
	if !smallest.IsInt() {
		return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
	}
	num := smallest.Num()
	if !num.IsInt64() {
		return 0, fmt.Errorf("amount exceeds maximum safe integer value")
	}
	return num.Int64(), nil
}

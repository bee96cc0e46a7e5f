package currency

import (
	"regexp"
	"sort"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code for the shop's books.
	DefaultCurrency Code = "USD"
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

// Code represents an ISO 4217-style currency code (e.g., "USD", "YER").
type Code string

func (c Code) String() string { return string(c) }

// Meta holds the reference data for one supported currency.
// Currency reference data is immutable at runtime; the registry is seeded
// once and only read afterwards.
type Meta struct {
	Code       Code   `json:"code"`
	Name       string `json:"name"`
	ArabicName string `json:"arabic_name"`
	Symbol     string `json:"symbol"`
	Decimals   int    `json:"decimals"`
}

// Registry is the catalog of currencies the shop trades in.
type Registry struct {
	mu         sync.RWMutex
	currencies map[Code]Meta
}

// NewRegistry creates a registry seeded with the currencies the shop
// supports out of the box.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[Code]Meta)}
	for _, m := range []Meta{
		{Code: "USD", Name: "US Dollar", ArabicName: "دولار أمريكي", Symbol: "$", Decimals: 2},
		{Code: "SAR", Name: "Saudi Riyal", ArabicName: "ريال سعودي", Symbol: "﷼", Decimals: 2},
		{Code: "YER", Name: "Yemeni Rial", ArabicName: "ريال يمني", Symbol: "ر.ي", Decimals: 0},
		{Code: "TRY", Name: "Turkish Lira", ArabicName: "ليرة تركية", Symbol: "₺", Decimals: 2},
		{Code: "EUR", Name: "Euro", ArabicName: "يورو", Symbol: "€", Decimals: 2},
		{Code: "GBP", Name: "British Pound", ArabicName: "جنيه إسترليني", Symbol: "£", Decimals: 2},
		{Code: "AED", Name: "UAE Dirham", ArabicName: "درهم إماراتي", Symbol: "د.إ", Decimals: 2},
	} {
		r.Register(m)
	}
	return r
}

// Register adds or replaces a currency in the registry.
func (r *Registry) Register(m Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.Decimals < 0 {
		m.Decimals = DefaultDecimals
	}
	r.currencies[m.Code] = m
}

// Get returns the metadata for a currency code.
func (r *Registry) Get(code Code) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.currencies[code]
	return m, ok
}

// IsSupported reports whether the code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

// List returns all registered currencies sorted by code.
func (r *Registry) List() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Meta, 0, len(r.currencies))
	for _, m := range r.currencies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat checks that a code is three uppercase letters. It does not
// check registration; use IsSupported for that.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// Global registry instance shared across the service.
var global = NewRegistry()

// Get returns metadata for a code from the global registry.
func Get(code Code) (Meta, bool) { return global.Get(code) }

// IsSupported reports whether a code is registered globally.
func IsSupported(code Code) bool { return global.IsSupported(code) }

// List returns all globally registered currencies.
func List() []Meta { return global.List() }

// Register adds a currency to the global registry.
func Register(m Meta) { global.Register(m) }

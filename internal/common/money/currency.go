// Package money provides decimal-safe formatting and conversion of monetary
// amounts. All arithmetic runs on arbitrary-precision decimals; binary
// floating point is never used on a money path. Each supported currency has a
// fixed minor-unit precision and display symbol, and every rendering resolves
// precision through that table rather than assuming two digits.
package money

import (
	"github.com/billops/billingctl/internal/common/apperrors"
)

// Currency is a supported ISO 4217 currency code.
type Currency string

const (
	CNY Currency = "CNY"
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
	HKD Currency = "HKD"
)

// ErrUnknownCurrency is returned when a currency code is not in the table.
var ErrUnknownCurrency = apperrors.New("unknown currency")

// currencyDef carries the per-currency rendering attributes.
type currencyDef struct {
	symbol   string // display symbol prefixed to formatted amounts
	decimals int32  // minor-unit digits; 0 for currencies without a minor unit
}

// currencies is the authoritative table. Adding a currency is a single entry
// here; nothing else may hard-code a precision or symbol.
var currencies = map[Currency]currencyDef{
	CNY: {symbol: "¥", decimals: 2},
	USD: {symbol: "$", decimals: 2},
	EUR: {symbol: "€", decimals: 2},
	JPY: {symbol: "¥", decimals: 0},
	GBP: {symbol: "£", decimals: 2},
	HKD: {symbol: "HK$", decimals: 2},
}

// Valid reports whether the currency is in the supported set.
func (c Currency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() (string, error) {
	def, ok := currencies[c]
	if !ok {
		return "", ErrUnknownCurrency.Msg("unknown currency: " + string(c))
	}
	return def.symbol, nil
}

// Decimals returns the minor-unit precision for the currency.
func (c Currency) Decimals() (int32, error) {
	def, ok := currencies[c]
	if !ok {
		return 0, ErrUnknownCurrency.Msg("unknown currency: " + string(c))
	}
	return def.decimals, nil
}

// Currencies returns the supported currency codes in stable order.
func Currencies() []Currency {
	return []Currency{CNY, USD, EUR, JPY, GBP, HKD}
}

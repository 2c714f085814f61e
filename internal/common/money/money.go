package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billops/billingctl/internal/common/apperrors"
)

// ErrInvalidAmount is returned when an amount or rate does not parse as a
// decimal number. Invalid monetary input is never coerced; callers must not
// be able to silently process corrupted money.
var ErrInvalidAmount = apperrors.New("invalid numeric input")

// FormatOptions controls how an amount is rendered. Construct with
// DefaultFormatOptions and override fields as needed; the zero value turns
// everything off, which is rarely what you want.
type FormatOptions struct {
	ShowSymbol bool  // prefix the currency's display symbol
	ShowCode   bool  // suffix the three-letter code, space separated
	Precision  int32 // fractional digits; negative means use the currency table
}

// DefaultFormatOptions returns the standard rendering: symbol and code shown,
// precision resolved from the currency table.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		ShowSymbol: true,
		ShowCode:   true,
		Precision:  -1,
	}
}

// Format renders amount with the currency's minor-unit precision, grouping
// the integer digits in threes. Rounding is half-up, applied once at the
// target precision. amount must parse as a decimal number.
func Format(amount string, currency Currency, opts ...FormatOptions) (string, error) {
	o := DefaultFormatOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	def, ok := currencies[currency]
	if !ok {
		return "", ErrUnknownCurrency.Msg("unknown currency: " + string(currency))
	}
	precision := o.Precision
	if precision < 0 {
		precision = def.decimals
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", ErrInvalidAmount.MsgErr("cannot parse amount: "+amount, err)
	}

	rendered := groupThousands(d.StringFixed(precision))

	var b strings.Builder
	if o.ShowSymbol {
		b.WriteString(def.symbol)
	}
	b.WriteString(rendered)
	if o.ShowCode {
		b.WriteString(" ")
		b.WriteString(string(currency))
	}
	return b.String(), nil
}

// Convert computes amount * rate and renders the product at the target
// currency's precision, without symbol or code. Same-currency conversion is
// an identity operation: the amount is re-rendered at the target precision
// and the rate is ignored entirely, so an imprecise rate of 1.0 cannot
// introduce drift.
func Convert(amount string, from, to Currency, rate string) (string, error) {
	toDef, ok := currencies[to]
	if !ok {
		return "", ErrUnknownCurrency.Msg("unknown currency: " + string(to))
	}
	if !from.Valid() {
		return "", ErrUnknownCurrency.Msg("unknown currency: " + string(from))
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", ErrInvalidAmount.MsgErr("cannot parse amount: "+amount, err)
	}

	if from == to {
		return d.StringFixed(toDef.decimals), nil
	}

	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", ErrInvalidAmount.MsgErr("cannot parse exchange rate: "+rate, err)
	}

	return d.Mul(r).StringFixed(toDef.decimals), nil
}

// groupThousands inserts a comma every three integer digits from the right.
// The input is a plain fixed-point decimal string, optionally signed.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + fracPart
}

package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	bare := FormatOptions{Precision: -1}

	tests := []struct {
		name     string
		amount   string
		currency Currency
		opts     []FormatOptions
		expected string
	}{
		{"usd defaults", "1234.5", USD, nil, "$1,234.50 USD"},
		{"cny defaults", "100", CNY, nil, "¥100.00 CNY"},
		{"eur defaults", "0.1", EUR, nil, "€0.10 EUR"},
		{"gbp defaults", "999999.999", GBP, nil, "£1,000,000.00 GBP"},
		{"hkd symbol", "42", HKD, nil, "HK$42.00 HKD"},
		{"jpy has no minor unit", "1234.5", JPY, nil, "¥1,235 JPY"},
		{"grouping over millions", "1234567.891", USD, nil, "$1,234,567.89 USD"},
		{"no symbol no code", "1234.5", USD, []FormatOptions{bare}, "1,234.50"},
		{"code only", "1234.5", USD, []FormatOptions{{ShowCode: true, Precision: -1}}, "1,234.50 USD"},
		{"symbol only", "1234.5", USD, []FormatOptions{{ShowSymbol: true, Precision: -1}}, "$1,234.50"},
		{"explicit precision", "1.2345", USD, []FormatOptions{{ShowSymbol: true, ShowCode: true, Precision: 3}}, "$1.235 USD"},
		{"zero precision override", "1234.56", USD, []FormatOptions{{Precision: 0}}, "1,235"},
		{"negative amount", "-1234.5", USD, []FormatOptions{bare}, "-1,234.50"},
		{"half up at boundary", "0.005", USD, []FormatOptions{bare}, "0.01"},
		{"jpy half up", "0.5", JPY, []FormatOptions{bare}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.amount, tt.currency, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Fractional digit count always equals the table precision, no matter how
// many fractional digits the input carries.
func TestFormatPrecisionFollowsTable(t *testing.T) {
	inputs := []string{"0", "1", "10.1", "10.12345", "99999.999999", "-3.14159"}

	for _, c := range Currencies() {
		decimals, err := c.Decimals()
		require.NoError(t, err)
		for _, in := range inputs {
			got, err := Format(in, c, FormatOptions{Precision: -1})
			require.NoError(t, err)

			frac := ""
			if i := strings.IndexByte(got, '.'); i >= 0 {
				frac = got[i+1:]
			}
			assert.Len(t, frac, int(decimals), "format(%s, %s) = %s", in, c, got)
		}
	}
}

func TestFormatErrors(t *testing.T) {
	_, err := Format("not-a-number", USD)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Format("", USD)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Format("100", Currency("XXX"))
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvert(t *testing.T) {
	// exact decimal multiply, half-up at the target currency's precision:
	// 10.005 * 110.25 = 1103.051250
	got, err := Convert("10.005", "USD", "JPY", "110.25")
	require.NoError(t, err)
	assert.Equal(t, "1103", got)

	got, err = Convert("10.005", "JPY", "USD", "0.00907")
	require.NoError(t, err)
	assert.Equal(t, "0.09", got)

	got, err = Convert("100", "USD", "EUR", "0.855")
	require.NoError(t, err)
	assert.Equal(t, "85.50", got)
}

// Identity conversion re-renders the amount at the target precision and
// ignores the rate entirely, malformed and zero rates included.
func TestConvertIdentityIgnoresRate(t *testing.T) {
	for _, rate := range []string{"1", "0", "2.5", "garbage", ""} {
		got, err := Convert("100", "USD", "USD", rate)
		require.NoError(t, err, "rate %q", rate)

		want, err := Format("100", USD, FormatOptions{Precision: -1})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := Convert("1234.567", "JPY", "JPY", "110.25")
	require.NoError(t, err)
	assert.Equal(t, "1235", got)
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert("abc", "USD", "JPY", "110")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Convert("100", "USD", "JPY", "bogus")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Convert("100", "USD", "XXX", "110")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = Convert("100", "XXX", "USD", "110")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestCurrencyTable(t *testing.T) {
	for _, c := range Currencies() {
		assert.True(t, c.Valid())
		sym, err := c.Symbol()
		require.NoError(t, err)
		assert.NotEmpty(t, sym)
	}

	d, err := JPY.Decimals()
	require.NoError(t, err)
	assert.Equal(t, int32(0), d)

	d, err = USD.Decimals()
	require.NoError(t, err)
	assert.Equal(t, int32(2), d)

	assert.False(t, Currency("BTC").Valid())
	_, err = Currency("BTC").Decimals()
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

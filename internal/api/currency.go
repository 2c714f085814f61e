package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/billops/billingctl/internal/common/money"
)

// ExchangeRate is a published rate between two currencies.
type ExchangeRate struct {
	ID            int64           `json:"id"`
	FromCurrency  money.Currency  `json:"from_currency"`
	ToCurrency    money.Currency  `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
	Source        string          `json:"source,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// ConvertRequest asks the server to convert an amount between currencies
// at the rate effective on the given date (today when empty).
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	FromCurrency money.Currency  `json:"from_currency" validate:"required"`
	ToCurrency   money.Currency  `json:"to_currency" validate:"required"`
	Date         string          `json:"date,omitempty"`
}

// ConvertResponse is the server-side conversion result.
type ConvertResponse struct {
	FromCurrency    money.Currency  `json:"from_currency"`
	ToCurrency      money.Currency  `json:"to_currency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	EffectiveDate   string          `json:"effective_date"`
}

// ExchangeRates lists published exchange rates.
func (c *Client) ExchangeRates(ctx context.Context, q PageQuery) (*Page[ExchangeRate], error) {
	return decode[Page[ExchangeRate]](c.http.Get(ctx, "/api/v1/exchange-rates", q.params()))
}

// QueryExchangeRate returns the rate between two currencies, optionally as
// of a date (YYYY-MM-DD).
func (c *Client) QueryExchangeRate(ctx context.Context, from, to money.Currency, date string) (*ExchangeRate, error) {
	params := map[string]string{
		"from_currency": string(from),
		"to_currency":   string(to),
	}
	if date != "" {
		params["date"] = date
	}
	return decode[ExchangeRate](c.http.Get(ctx, "/api/v1/exchange-rates/query", params))
}

// Convert performs a server-side conversion at the published rate.
func (c *Client) Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[ConvertResponse](c.http.Post(ctx, "/api/v1/currency/convert", req))
}

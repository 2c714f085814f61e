package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/billops/billingctl/internal/common/money"
)

type PaymentMethod string

const (
	PayByBalance      PaymentMethod = "BALANCE"
	PayByAlipay       PaymentMethod = "ALIPAY"
	PayByWechat       PaymentMethod = "WECHAT"
	PayByBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Payment is a payment against an order or bill.
type Payment struct {
	PaymentID          string          `json:"payment_id"`
	OrderID            string          `json:"order_id,omitempty"`
	BillID             string          `json:"bill_id,omitempty"`
	TenantID           string          `json:"tenant_id"`
	UserID             string          `json:"user_id"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	PaymentChannel     string          `json:"payment_channel,omitempty"`
	Currency           money.Currency  `json:"currency"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate,omitempty"`
	BaseCurrency       money.Currency  `json:"base_currency"`
	BaseCurrencyAmount decimal.Decimal `json:"base_currency_amount,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Status             PaymentStatus   `json:"status"`
	ExternalOrderID    string          `json:"external_order_id,omitempty"`
	PaidAt             string          `json:"paid_at,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

// AccountBalance is a tenant's balance account.
type AccountBalance struct {
	TenantID      string          `json:"tenant_id"`
	Balance       decimal.Decimal `json:"balance"`
	FrozenBalance decimal.Decimal `json:"frozen_balance"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Currency      money.Currency  `json:"currency"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type TransactionType string

const (
	TxnRecharge TransactionType = "RECHARGE"
	TxnPayment  TransactionType = "PAYMENT"
	TxnDeduct   TransactionType = "DEDUCT"
	TxnRefund   TransactionType = "REFUND"
	TxnFreeze   TransactionType = "FREEZE"
	TxnUnfreeze TransactionType = "UNFREEZE"
)

// BalanceTransaction is one movement on a tenant's balance account.
type BalanceTransaction struct {
	TransactionID    string          `json:"transaction_id"`
	TenantID         string          `json:"tenant_id"`
	TransactionType  TransactionType `json:"transaction_type"`
	Amount           decimal.Decimal `json:"amount"`
	BalanceBefore    decimal.Decimal `json:"balance_before"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	RelatedOrderID   string          `json:"related_order_id,omitempty"`
	RelatedBillID    string          `json:"related_bill_id,omitempty"`
	RelatedPaymentID string          `json:"related_payment_id,omitempty"`
	Remark           string          `json:"remark,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

// CreatePaymentRequest initiates a payment.
type CreatePaymentRequest struct {
	OrderID        string          `json:"order_id,omitempty"`
	BillID         string          `json:"bill_id,omitempty"`
	TenantID       string          `json:"tenant_id" validate:"required"`
	UserID         string          `json:"user_id" validate:"required"`
	PaymentMethod  PaymentMethod   `json:"payment_method" validate:"required,oneof=BALANCE ALIPAY WECHAT BANK_TRANSFER"`
	PaymentChannel string          `json:"payment_channel,omitempty"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Currency       money.Currency  `json:"currency" validate:"required"`
}

// CreatePayment initiates a payment.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[Payment](c.http.Post(ctx, "/api/v1/payments", req))
}

// Payment returns a single payment.
func (c *Client) Payment(ctx context.Context, paymentID string) (*Payment, error) {
	return decode[Payment](c.http.Get(ctx, "/api/v1/payments/"+paymentID, nil))
}

// Payments lists payments.
func (c *Client) Payments(ctx context.Context, q PageQuery) (*Page[Payment], error) {
	return decode[Page[Payment]](c.http.Get(ctx, "/api/v1/payments", q.params()))
}

// Balance returns a tenant's balance account.
func (c *Client) Balance(ctx context.Context, tenantID string) (*AccountBalance, error) {
	return decode[AccountBalance](c.http.Get(ctx, "/api/v1/tenants/"+tenantID+"/balance", nil))
}

// Recharge tops up a tenant's balance.
func (c *Client) Recharge(ctx context.Context, tenantID string, amount decimal.Decimal) error {
	body := map[string]decimal.Decimal{"amount": amount}
	_, err := c.http.Post(ctx, "/api/v1/tenants/"+tenantID+"/balance/recharge", body)
	return err
}

// BalanceTransactions lists the movements on a tenant's balance account.
func (c *Client) BalanceTransactions(ctx context.Context, tenantID string, q PageQuery) (*Page[BalanceTransaction], error) {
	return decode[Page[BalanceTransaction]](c.http.Get(ctx, "/api/v1/tenants/"+tenantID+"/balance/transactions", q.params()))
}

package api

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/billops/billingctl/internal/common/money"
)

type OrderType string

const (
	OrderPrepaid  OrderType = "PREPAID"
	OrderPostpaid OrderType = "POSTPAID"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a billing order. Monetary fields are decimals; they are never
// handled as binary floats.
type Order struct {
	OrderID            string          `json:"order_id"`
	OrderNo            string          `json:"order_no"`
	TenantID           string          `json:"tenant_id"`
	OrganizationID     string          `json:"organization_id"`
	ProjectID          string          `json:"project_id"`
	UserID             string          `json:"user_id"`
	OrderType          OrderType       `json:"order_type"`
	SpuCode            string          `json:"spu_code"`
	SkuCode            string          `json:"sku_code"`
	Currency           money.Currency  `json:"currency"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate,omitempty"`
	BaseCurrency       money.Currency  `json:"base_currency"`
	BaseCurrencyAmount decimal.Decimal `json:"base_currency_amount,omitempty"`
	OriginalAmount     decimal.Decimal `json:"original_amount"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	PayableAmount      decimal.Decimal `json:"payable_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PeriodStart        string          `json:"period_start,omitempty"`
	PeriodEnd          string          `json:"period_end,omitempty"`
	Status             OrderStatus     `json:"status"`
	OrderDetail        json.RawMessage `json:"order_detail,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

// CreateOrderRequest creates a new order for a SKU.
type CreateOrderRequest struct {
	TenantID       string          `json:"tenant_id" validate:"required"`
	OrganizationID string          `json:"organization_id" validate:"required"`
	ProjectID      string          `json:"project_id" validate:"required"`
	UserID         string          `json:"user_id" validate:"required"`
	OrderType      OrderType       `json:"order_type" validate:"required,oneof=PREPAID POSTPAID"`
	SkuCode        string          `json:"sku_code" validate:"required"`
	Quantity       int             `json:"quantity" validate:"required,min=1"`
	PeriodStart    string          `json:"period_start,omitempty"`
	PeriodEnd      string          `json:"period_end,omitempty"`
	OrderDetail    json.RawMessage `json:"order_detail,omitempty"`
}

// CreateOrder creates an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[Order](c.http.Post(ctx, "/api/v1/orders", req))
}

// Orders lists orders.
func (c *Client) Orders(ctx context.Context, q PageQuery) (*Page[Order], error) {
	return decode[Page[Order]](c.http.Get(ctx, "/api/v1/orders", q.params()))
}

// Order returns a single order.
func (c *Client) Order(ctx context.Context, orderID string) (*Order, error) {
	return decode[Order](c.http.Get(ctx, "/api/v1/orders/"+orderID, nil))
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.http.Put(ctx, "/api/v1/orders/"+orderID+"/cancel", nil)
	return err
}

// PayOrder pays a pending order from the tenant's balance.
func (c *Client) PayOrder(ctx context.Context, orderID string) error {
	_, err := c.http.Post(ctx, "/api/v1/orders/"+orderID+"/pay", nil)
	return err
}

package api

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/billops/billingctl/internal/common/money"
)

type StockType string

const (
	StockAvailable StockType = "AVAILABLE"
	StockOut       StockType = "OUT_OF_STOCK"
	StockPreOrder  StockType = "PRE_ORDER"
)

// SKU is a sellable unit of a product.
type SKU struct {
	SkuID      string          `json:"sku_id"`
	SkuCode    string          `json:"sku_code"`
	SpuID      int64           `json:"spu_id"`
	SpuCode    string          `json:"spu_code"`
	SkuName    string          `json:"sku_name"`
	SpecValues json.RawMessage `json:"spec_values,omitempty"`
	Region     string          `json:"region"`
	StockType  StockType       `json:"stock_type"`
	Status     Status          `json:"status"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

type PriceRuleType string

const (
	PriceFixed     PriceRuleType = "FIXED"
	PriceTiered    PriceRuleType = "TIERED"
	PriceTimeBased PriceRuleType = "TIME_BASED"
	PricePackage   PriceRuleType = "PACKAGE"
)

// PriceRule prices a SKU or SPU. PricingDetail is rule-type specific and
// kept raw; FIXED rules carry a unit_price field.
type PriceRule struct {
	RuleID         string          `json:"rule_id"`
	RuleCode       string          `json:"rule_code"`
	RuleName       string          `json:"rule_name"`
	SkuCode        string          `json:"sku_code,omitempty"`
	SpuCode        string          `json:"spu_code,omitempty"`
	RuleType       PriceRuleType   `json:"rule_type"`
	PricingDetail  json.RawMessage `json:"pricing_detail"`
	Currency       money.Currency  `json:"currency"`
	EffectiveStart string          `json:"effective_start"`
	EffectiveEnd   string          `json:"effective_end,omitempty"`
	Priority       int             `json:"priority"`
	Status         Status          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// SKUWithPrice is a SKU joined to its matching price rule.
type SKUWithPrice struct {
	SKU
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Currency  money.Currency   `json:"currency,omitempty"`
	PriceRule *PriceRule       `json:"price_rule,omitempty"`
}

// SKUs lists SKUs.
func (c *Client) SKUs(ctx context.Context, q PageQuery) (*Page[SKU], error) {
	return decode[Page[SKU]](c.http.Get(ctx, "/api/v1/products/sku", q.params()))
}

// SKU returns a single SKU.
func (c *Client) SKU(ctx context.Context, skuID string) (*SKU, error) {
	return decode[SKU](c.http.Get(ctx, "/api/v1/products/sku/"+skuID, nil))
}

// PriceRules lists price rules.
func (c *Client) PriceRules(ctx context.Context, q PageQuery) (*Page[PriceRule], error) {
	return decode[Page[PriceRule]](c.http.Get(ctx, "/api/v1/price-rules", q.params()))
}

// PriceRule returns a single price rule.
func (c *Client) PriceRule(ctx context.Context, ruleID string) (*PriceRule, error) {
	return decode[PriceRule](c.http.Get(ctx, "/api/v1/price-rules/"+ruleID, nil))
}

// SKUsWithPrice joins the SKU list to the price rule list, matching rules by
// sku_code or spu_code. Only FIXED rules contribute a unit price; other rule
// types attach without one.
func (c *Client) SKUsWithPrice(ctx context.Context) ([]SKUWithPrice, error) {
	skus, err := c.SKUs(ctx, PageQuery{Page: 1, PageSize: 100})
	if err != nil {
		return nil, err
	}
	rules, err := c.PriceRules(ctx, PageQuery{Page: 1, PageSize: 100})
	if err != nil {
		return nil, err
	}

	joined := make([]SKUWithPrice, 0, len(skus.Data))
	for _, sku := range skus.Data {
		item := SKUWithPrice{SKU: sku}
		for i := range rules.Data {
			rule := &rules.Data[i]
			if rule.SkuCode != sku.SkuCode && rule.SpuCode != sku.SpuCode {
				continue
			}
			item.PriceRule = rule
			item.Currency = rule.Currency
			if rule.RuleType == PriceFixed {
				if p := gjson.GetBytes(rule.PricingDetail, "unit_price"); p.Exists() {
					if d, err := decimal.NewFromString(p.String()); err == nil {
						item.UnitPrice = &d
					}
				}
			}
			break
		}
		joined = append(joined, item)
	}
	return joined, nil
}

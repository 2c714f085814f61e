package api

import (
	"context"

	"github.com/billops/billingctl/internal/common/money"
)

// TenantType distinguishes individual from enterprise tenants.
type TenantType string

const (
	TenantIndividual TenantType = "INDIVIDUAL"
	TenantEnterprise TenantType = "ENTERPRISE"
)

// Tenant is an organizational scope that partitions billing data.
type Tenant struct {
	TenantID          string         `json:"tenant_id"`
	TenantCode        string         `json:"tenant_code"`
	Name              string         `json:"name"`
	TenantType        TenantType     `json:"tenant_type"`
	PreferredCurrency money.Currency `json:"preferred_currency"`
	Verified          bool           `json:"verified"`
	VerifiedType      string         `json:"verified_type,omitempty"`
	VerifiedAt        string         `json:"verified_at,omitempty"`
	Status            Status         `json:"status"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

// RegisterIndividualRequest registers a personal tenant.
type RegisterIndividualRequest struct {
	Name              string         `json:"name" validate:"required"`
	Email             string         `json:"email" validate:"required,email"`
	Phone             string         `json:"phone,omitempty"`
	PreferredCurrency money.Currency `json:"preferred_currency" validate:"required"`
}

// RegisterEnterpriseRequest registers a company tenant.
type RegisterEnterpriseRequest struct {
	CompanyName       string         `json:"company_name" validate:"required"`
	TaxID             string         `json:"tax_id" validate:"required"`
	ContactEmail      string         `json:"contact_email" validate:"required,email"`
	ContactPhone      string         `json:"contact_phone,omitempty"`
	PreferredCurrency money.Currency `json:"preferred_currency" validate:"required"`
}

// Tenants lists tenants.
func (c *Client) Tenants(ctx context.Context, q PageQuery) (*Page[Tenant], error) {
	return decode[Page[Tenant]](c.http.Get(ctx, "/api/v1/tenants", q.params()))
}

// Tenant returns a single tenant.
func (c *Client) Tenant(ctx context.Context, tenantID string) (*Tenant, error) {
	return decode[Tenant](c.http.Get(ctx, "/api/v1/tenants/"+tenantID, nil))
}

// RegisterIndividual registers a personal tenant.
func (c *Client) RegisterIndividual(ctx context.Context, req RegisterIndividualRequest) (*Tenant, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[Tenant](c.http.Post(ctx, "/api/v1/tenants/register/individual", req))
}

// RegisterEnterprise registers a company tenant.
func (c *Client) RegisterEnterprise(ctx context.Context, req RegisterEnterpriseRequest) (*Tenant, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[Tenant](c.http.Post(ctx, "/api/v1/tenants/register/enterprise", req))
}

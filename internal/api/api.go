// Package api contains the typed endpoint wrappers for the billing platform.
// Each wrapper binds a verb and path to the transport pipeline; all auth,
// tenant scoping, and failure handling happens in the pipeline, never here.
package api

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/billops/billingctl/internal/common/httpclient"
)

func init() {
	// monetary fields travel as JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is the generic enabled/disabled flag used across resources.
type Status int

const (
	StatusDisabled Status = 0
	StatusEnabled  Status = 1
)

// Page is the paged collection shape returned by list endpoints.
type Page[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Data     []T `json:"data"`
}

// PageQuery selects a page of a list endpoint. Zero fields are omitted and
// left to server defaults.
type PageQuery struct {
	Page     int
	PageSize int
}

func (q PageQuery) params() map[string]string {
	m := map[string]string{}
	if q.Page > 0 {
		m["page"] = strconv.Itoa(q.Page)
	}
	if q.PageSize > 0 {
		m["page_size"] = strconv.Itoa(q.PageSize)
	}
	return m
}

// Client groups the endpoint wrappers over a transport pipeline.
type Client struct {
	http     httpclient.ClientInterface
	validate *validator.Validate
}

// New creates an API client on top of the given transport.
func New(transport httpclient.ClientInterface) *Client {
	return &Client{
		http:     transport,
		validate: validator.New(),
	}
}

// checkRequest validates a request payload before it hits the wire, so
// obviously malformed input fails locally instead of as a server roundtrip.
func (c *Client) checkRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func decode[T any](res *httpclient.Result, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var v T
	if err := res.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &v, nil
}

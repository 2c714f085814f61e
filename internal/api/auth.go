package api

import "context"

// LoginRequest carries the operator credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by login and token refresh. Token and TenantID
// feed the session store; the rest describes the authenticated user.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	TenantID  string `json:"tenant_id"`
	Username  string `json:"username"`
	RealName  string `json:"real_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ExpiresAt string `json:"expires_at"`
}

// UserInfo describes the currently authenticated user.
type UserInfo struct {
	UserID    string `json:"user_id"`
	TenantID  string `json:"tenant_id"`
	Username  string `json:"username"`
	RealName  string `json:"real_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Status    Status `json:"status"`
}

// Login authenticates the operator.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	return decode[LoginResponse](c.http.Post(ctx, "/api/v1/auth/login", req))
}

// Logout invalidates the current session on the server.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.http.Post(ctx, "/api/v1/auth/logout", nil)
	return err
}

// CurrentUser returns the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*UserInfo, error) {
	return decode[UserInfo](c.http.Get(ctx, "/api/v1/auth/user", nil))
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (*LoginResponse, error) {
	return decode[LoginResponse](c.http.Post(ctx, "/api/v1/auth/refresh", nil))
}

package gateway

import "context"

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	return Post[LoginResponse](ctx, c, "/auth/login", req)
}

// Register creates a new account. The caller must still log in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := Post[string](ctx, c, "/auth/register", req)
	return err
}

// Profile fetches the authenticated user's own record.
func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	return Get[UserProfile](ctx, c, "/auth/me")
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	_, err := Post[bool](ctx, c, "/auth/change-password", req)
	return err
}

// AssignRole changes another user's role. Root admin only.
func (c *Client) AssignRole(ctx context.Context, req AssignRoleRequest) error {
	_, err := Post[bool](ctx, c, "/auth/assign-role", req)
	return err
}
